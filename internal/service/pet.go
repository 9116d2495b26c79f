package service

import (
	"context"

	"github.com/deppfellow/petcare-api/internal/errs"
	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/sqlerr"
	"github.com/rs/zerolog"
)

type PetService struct {
	store PetStore
}

func NewPetService(store PetStore) *PetService {
	return &PetService{store: store}
}

func (s *PetService) Register(ctx context.Context, req *model.RegisterPetRequest) (model.Response, error) {
	logger := zerolog.Ctx(ctx)

	id, err := s.store.Create(ctx, req.ToPet())
	if err != nil {
		logger.Error().
			Err(err).
			Str("sql_code", string(sqlerr.ErrCode(err))).
			Msg("failed to register pet")
		return model.Response{}, errs.NewStoreError(model.MsgPetFailed, err)
	}

	logger.Info().Int64("pet_id", id).Msg("pet registered")
	return model.OK(model.MsgPetRegistered), nil
}
