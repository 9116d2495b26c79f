// Package repository persists registrations in PostgreSQL.
//
// Every statement is parameterized; request values never reach SQL text.
package repository

import (
	"github.com/deppfellow/petcare-api/internal/database"
)

// DBTX runs statements either on the pool or inside a transaction.
type DBTX = database.Querier

// Repositories groups the PostgreSQL repositories.
type Repositories struct {
	Pets         *PetRepository
	Reservations *ReservationRepository
	Customers    *CustomerRepository
	Cards        *CardRepository
}

func NewRepositories(db *database.Database) *Repositories {
	return &Repositories{
		Pets:         NewPetRepository(db),
		Reservations: NewReservationRepository(db),
		Customers:    NewCustomerRepository(db),
		Cards:        NewCardRepository(db),
	}
}
