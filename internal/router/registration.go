package router

import (
	"github.com/deppfellow/petcare-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerRegistrationRoutes registers the four registration endpoints. They
// share one rate limiter so the budget is per client, not per route.
func registerRegistrationRoutes(r *echo.Echo, h *handler.Handlers, limit echo.MiddlewareFunc) {
	r.POST("/register-mascota", h.Pet.RegisterPet, limit)
	r.POST("/reserva", h.Reservation.CreateReservation, limit)
	r.POST("/register", h.Customer.RegisterCustomer, limit)
	r.POST("/register-tarjeta", h.Card.RegisterCard, limit)
}
