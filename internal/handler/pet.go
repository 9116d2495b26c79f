package handler

import (
	"net/http"

	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/server"
	"github.com/deppfellow/petcare-api/internal/service"
	"github.com/labstack/echo/v4"
)

type PetHandler struct {
	Handler
	petService *service.PetService
}

func NewPetHandler(s *server.Server, petService *service.PetService) *PetHandler {
	return &PetHandler{
		Handler:    NewHandler(s),
		petService: petService,
	}
}

// RegisterPet handles POST /register-mascota.
func (h *PetHandler) RegisterPet(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, req *model.RegisterPetRequest) (model.Response, error) {
			return h.petService.Register(c.Request().Context(), req)
		},
		http.StatusOK,
		func() *model.RegisterPetRequest { return &model.RegisterPetRequest{} },
	)(c)
}
