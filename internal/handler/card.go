package handler

import (
	"net/http"

	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/server"
	"github.com/deppfellow/petcare-api/internal/service"
	"github.com/labstack/echo/v4"
)

type CardHandler struct {
	Handler
	cardService *service.CardService
}

func NewCardHandler(s *server.Server, cardService *service.CardService) *CardHandler {
	return &CardHandler{
		Handler:     NewHandler(s),
		cardService: cardService,
	}
}

// RegisterCard handles POST /register-tarjeta.
func (h *CardHandler) RegisterCard(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, req *model.RegisterCardRequest) (model.Response, error) {
			return h.cardService.Register(c.Request().Context(), req)
		},
		http.StatusOK,
		func() *model.RegisterCardRequest { return &model.RegisterCardRequest{} },
	)(c)
}
