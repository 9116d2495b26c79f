package handler

import (
	"github.com/deppfellow/petcare-api/internal/server"
	"github.com/deppfellow/petcare-api/internal/service"
)

// Handlers groups every HTTP handler so router setup takes one value.
type Handlers struct {
	Health      *HealthHandler
	OpenAPI     *OpenAPIHandler
	Pet         *PetHandler
	Reservation *ReservationHandler
	Customer    *CustomerHandler
	Card        *CardHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(s),
		OpenAPI:     NewOpenAPIHandler(s),
		Pet:         NewPetHandler(s, services.Pets),
		Reservation: NewReservationHandler(s, services.Reservations),
		Customer:    NewCustomerHandler(s, services.Customers),
		Card:        NewCardHandler(s, services.Cards),
	}
}
