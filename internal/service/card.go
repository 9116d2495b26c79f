package service

import (
	"context"

	"github.com/deppfellow/petcare-api/internal/errs"
	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/sqlerr"
	"github.com/rs/zerolog"
)

type CardService struct {
	store CardStore
}

func NewCardService(store CardStore) *CardService {
	return &CardService{store: store}
}

// Register stores a payment card. Card details are never logged.
func (s *CardService) Register(ctx context.Context, req *model.RegisterCardRequest) (model.Response, error) {
	logger := zerolog.Ctx(ctx)

	id, err := s.store.Create(ctx, req.ToCard())
	if err != nil {
		logger.Error().
			Err(err).
			Str("sql_code", string(sqlerr.ErrCode(err))).
			Msg("failed to register card")
		return model.Response{}, errs.NewStoreError(model.MsgCardFailed, err)
	}

	logger.Info().Int64("card_id", id).Msg("card registered")
	return model.OK(model.MsgCardRegistered), nil
}
