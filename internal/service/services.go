// Package service holds the registration flows between the HTTP handlers
// and the repositories.
//
// Store failures are logged with their SQL classification and returned to
// the caller as an *errs.HTTPError carrying the endpoint's message; driver
// error text never reaches the client.
package service

import (
	"context"

	"github.com/deppfellow/petcare-api/internal/config"
	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/repository"
)

type PetStore interface {
	Create(ctx context.Context, p model.Pet) (int64, error)
}

type ReservationStore interface {
	Create(ctx context.Context, r model.Reservation) (int64, error)
}

type CardStore interface {
	Create(ctx context.Context, c model.Card) (int64, error)
}

// CustomerStore runs customer registration statements in one transaction.
type CustomerStore interface {
	WithinTx(ctx context.Context, fn func(tx repository.CustomerTx) error) error
}

// Mailer sends the verification email. *email.Client implements it.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, link string) error
}

// Stores bundles the storage each service needs.
type Stores struct {
	Pets         PetStore
	Reservations ReservationStore
	Customers    CustomerStore
	Cards        CardStore
}

// FromRepositories adapts the PostgreSQL repositories.
func FromRepositories(repos *repository.Repositories) Stores {
	return Stores{
		Pets:         repos.Pets,
		Reservations: repos.Reservations,
		Customers:    repos.Customers,
		Cards:        repos.Cards,
	}
}

type Services struct {
	Pets         *PetService
	Reservations *ReservationService
	Customers    *CustomerService
	Cards        *CardService
}

func NewServices(cfg *config.Config, stores Stores, mailer Mailer) *Services {
	return &Services{
		Pets:         NewPetService(stores.Pets),
		Reservations: NewReservationService(stores.Reservations),
		Customers:    NewCustomerService(stores.Customers, mailer, cfg.Verification.BaseURL),
		Cards:        NewCardService(stores.Cards),
	}
}
