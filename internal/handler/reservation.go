package handler

import (
	"net/http"

	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/server"
	"github.com/deppfellow/petcare-api/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	Handler
	reservationService *service.ReservationService
}

func NewReservationHandler(s *server.Server, reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		Handler:            NewHandler(s),
		reservationService: reservationService,
	}
}

// CreateReservation handles POST /reserva.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, req *model.CreateReservationRequest) (model.Response, error) {
			return h.reservationService.Create(c.Request().Context(), req)
		},
		http.StatusOK,
		func() *model.CreateReservationRequest { return &model.CreateReservationRequest{} },
	)(c)
}
