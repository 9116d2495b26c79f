package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/petcare-api/internal/database"
	"github.com/deppfellow/petcare-api/internal/model"
)

// TxRunner starts transactions. *database.Database implements it.
type TxRunner interface {
	BeginFunc(ctx context.Context, fn func(database.Querier) error) error
}

// CustomerTx is the set of customer registration statements bound to one
// transaction.
type CustomerTx interface {
	ExistsByIdentification(ctx context.Context, identification string) (bool, error)
	Create(ctx context.Context, c model.Customer) (int64, error)
	SaveSecurityAnswers(ctx context.Context, a model.SecurityAnswers) error
	UpsertVerificationToken(ctx context.Context, token model.VerificationToken) error
}

// CustomerRepository runs the customer registration statements. They are
// only reachable through WithinTx so that the whole registration commits or
// rolls back together.
type CustomerRepository struct {
	db TxRunner
}

func NewCustomerRepository(db TxRunner) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// WithinTx runs fn in a transaction. A non-nil error from fn rolls it back.
func (r *CustomerRepository) WithinTx(ctx context.Context, fn func(tx CustomerTx) error) error {
	return r.db.BeginFunc(ctx, func(q database.Querier) error {
		return fn(&customerTx{db: q})
	})
}

type customerTx struct {
	db DBTX
}

func (t *customerTx) ExistsByIdentification(ctx context.Context, identification string) (bool, error) {
	var exists bool
	err := t.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM clientes WHERE identificacion = $1
		)
	`, identification).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("select cliente: %w", err)
	}
	return exists, nil
}

func (t *customerTx) Create(ctx context.Context, c model.Customer) (int64, error) {
	var id int64
	err := t.db.QueryRow(ctx, `
		INSERT INTO clientes (
			nombre, identificacion, celular, correo, usuario, contrasena
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		c.Name,
		c.Identification,
		c.Phone,
		c.Email,
		c.Username,
		c.PasswordDigest,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert cliente: %w", err)
	}
	return id, nil
}

func (t *customerTx) SaveSecurityAnswers(ctx context.Context, a model.SecurityAnswers) error {
	_, err := t.db.Exec(ctx, `
		INSERT INTO validacion (
			identificacion, mascota, cantante, materia
		) VALUES ($1, $2, $3, $4)
	`,
		a.Identification,
		a.PetDigest,
		a.SingerDigest,
		a.SubjectDigest,
	)
	if err != nil {
		return fmt.Errorf("insert validacion: %w", err)
	}
	return nil
}

// UpsertVerificationToken stores the token for an email, replacing any
// earlier one and resetting its creation time.
func (t *customerTx) UpsertVerificationToken(ctx context.Context, token model.VerificationToken) error {
	_, err := t.db.Exec(ctx, `
		INSERT INTO tokens_verificacion (correo, token, fecha_creacion)
		VALUES ($1, $2, NOW())
		ON CONFLICT (correo) DO UPDATE
		SET token = EXCLUDED.token,
			fecha_creacion = NOW()
	`,
		token.Email,
		token.Token,
	)
	if err != nil {
		return fmt.Errorf("upsert token_verificacion: %w", err)
	}
	return nil
}
