// Package memory is an in-process implementation of the registration
// repositories. It backs the server's in-memory mode and the service and
// handler tests.
//
// Customer transactions are staged on a copy of the customer tables and
// swapped in on commit, so a failed registration leaves nothing behind.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/repository"
)

// Op names a store operation for failure injection.
type Op string

const (
	OpCreatePet           Op = "create_pet"
	OpCreateReservation   Op = "create_reservation"
	OpCreateCard          Op = "create_card"
	OpLookupCustomer      Op = "lookup_customer"
	OpCreateCustomer      Op = "create_customer"
	OpSaveSecurityAnswers Op = "save_security_answers"
	OpUpsertToken         Op = "upsert_token"
	OpCommit              Op = "commit"
)

// ErrDuplicateKey mirrors a unique constraint violation.
var ErrDuplicateKey = errors.New("memory: duplicate key")

type customerTables struct {
	customers []model.Customer
	answers   []model.SecurityAnswers
	tokens    map[string]model.VerificationToken
}

func (t customerTables) clone() customerTables {
	tokens := make(map[string]model.VerificationToken, len(t.tokens))
	for k, v := range t.tokens {
		tokens[k] = v
	}
	return customerTables{
		customers: append([]model.Customer(nil), t.customers...),
		answers:   append([]model.SecurityAnswers(nil), t.answers...),
		tokens:    tokens,
	}
}

type Store struct {
	mu sync.Mutex
	// txMu serializes customer transactions. It is held across fn, while mu
	// is only taken per statement.
	txMu   sync.Mutex
	nextID int64
	now    func() time.Time

	pets         []model.Pet
	reservations []model.Reservation
	cards        []model.Card
	customer     customerTables

	failures map[Op]error
}

func NewStore() *Store {
	return &Store{
		now:      time.Now,
		customer: customerTables{tokens: map[string]model.VerificationToken{}},
		failures: map[Op]error{},
	}
}

// FailOn makes every later call of op return err. A nil err clears it.
func (s *Store) FailOn(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// failure must be called with s.mu held.
func (s *Store) failure(ctx context.Context, op Op) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := s.failures[op]; ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) Pets() *PetRepository                 { return &PetRepository{s: s} }
func (s *Store) Reservations() *ReservationRepository { return &ReservationRepository{s: s} }
func (s *Store) Cards() *CardRepository               { return &CardRepository{s: s} }
func (s *Store) Customers() *CustomerRepository       { return &CustomerRepository{s: s} }

func (s *Store) PetRows() []model.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Pet(nil), s.pets...)
}

func (s *Store) ReservationRows() []model.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Reservation(nil), s.reservations...)
}

func (s *Store) CardRows() []model.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Card(nil), s.cards...)
}

func (s *Store) CustomerRows() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Customer(nil), s.customer.customers...)
}

func (s *Store) SecurityAnswerRows() []model.SecurityAnswers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.SecurityAnswers(nil), s.customer.answers...)
}

func (s *Store) TokenRows() []model.VerificationToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]model.VerificationToken, 0, len(s.customer.tokens))
	for _, t := range s.customer.tokens {
		rows = append(rows, t)
	}
	return rows
}

type PetRepository struct{ s *Store }

func (r *PetRepository) Create(ctx context.Context, p model.Pet) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(ctx, OpCreatePet); err != nil {
		return 0, err
	}
	p.ID = r.s.id()
	p.CreatedAt = r.s.now()
	r.s.pets = append(r.s.pets, p)
	return p.ID, nil
}

type ReservationRepository struct{ s *Store }

func (r *ReservationRepository) Create(ctx context.Context, res model.Reservation) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(ctx, OpCreateReservation); err != nil {
		return 0, err
	}
	res.ID = r.s.id()
	res.CreatedAt = r.s.now()
	r.s.reservations = append(r.s.reservations, res)
	return res.ID, nil
}

type CardRepository struct{ s *Store }

func (r *CardRepository) Create(ctx context.Context, c model.Card) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(ctx, OpCreateCard); err != nil {
		return 0, err
	}
	c.ID = r.s.id()
	c.CreatedAt = r.s.now()
	r.s.cards = append(r.s.cards, c)
	return c.ID, nil
}

type CustomerRepository struct{ s *Store }

// WithinTx serializes customer registrations against each other only. Pet,
// reservation and card writes proceed while fn runs.
func (r *CustomerRepository) WithinTx(ctx context.Context, fn func(tx repository.CustomerTx) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	tx := &customerTx{s: r.s, tables: r.s.customer.clone()}
	r.s.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(ctx, OpCommit); err != nil {
		return err
	}
	r.s.customer = tx.tables
	return nil
}

// customerTx owns its staged tables. The store lock is taken only for
// failure injection, ids and timestamps.
type customerTx struct {
	s      *Store
	tables customerTables
}

func (t *customerTx) check(ctx context.Context, op Op) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.failure(ctx, op)
}

func (t *customerTx) stamp() (int64, time.Time) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.id(), t.s.now()
}

func (t *customerTx) ExistsByIdentification(ctx context.Context, identification string) (bool, error) {
	if err := t.check(ctx, OpLookupCustomer); err != nil {
		return false, err
	}
	for _, c := range t.tables.customers {
		if c.Identification == identification {
			return true, nil
		}
	}
	return false, nil
}

func (t *customerTx) Create(ctx context.Context, c model.Customer) (int64, error) {
	if err := t.check(ctx, OpCreateCustomer); err != nil {
		return 0, err
	}
	for _, existing := range t.tables.customers {
		if existing.Identification == c.Identification {
			return 0, fmt.Errorf("insert cliente %q: %w", c.Identification, ErrDuplicateKey)
		}
	}
	c.ID, c.CreatedAt = t.stamp()
	t.tables.customers = append(t.tables.customers, c)
	return c.ID, nil
}

func (t *customerTx) SaveSecurityAnswers(ctx context.Context, a model.SecurityAnswers) error {
	if err := t.check(ctx, OpSaveSecurityAnswers); err != nil {
		return err
	}
	t.tables.answers = append(t.tables.answers, a)
	return nil
}

func (t *customerTx) UpsertVerificationToken(ctx context.Context, token model.VerificationToken) error {
	if err := t.check(ctx, OpUpsertToken); err != nil {
		return err
	}
	_, token.CreatedAt = t.stamp()
	t.tables.tokens[token.Email] = token
	return nil
}
