package service

import (
	"context"

	"github.com/deppfellow/petcare-api/internal/errs"
	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/sqlerr"
	"github.com/rs/zerolog"
)

type ReservationService struct {
	store ReservationStore
}

func NewReservationService(store ReservationStore) *ReservationService {
	return &ReservationService{store: store}
}

// Create stores the reservation with the price the client submitted.
func (s *ReservationService) Create(ctx context.Context, req *model.CreateReservationRequest) (model.Response, error) {
	logger := zerolog.Ctx(ctx)

	id, err := s.store.Create(ctx, req.ToReservation())
	if err != nil {
		logger.Error().
			Err(err).
			Str("sql_code", string(sqlerr.ErrCode(err))).
			Msg("failed to register reservation")
		return model.Response{}, errs.NewStoreError(model.MsgReservationFailed, err)
	}

	logger.Info().
		Int64("reservation_id", id).
		Str("service", req.Service.String()).
		Msg("reservation registered")
	return model.OK(model.MsgReservationRegistered), nil
}
