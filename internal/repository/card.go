package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/petcare-api/internal/model"
)

type CardRepository struct {
	db DBTX
}

func NewCardRepository(db DBTX) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, c model.Card) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO tarjetas (
			nombre, identificacion, numero_tarjeta, cvv, monto
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		c.HolderName,
		c.Identification,
		c.Number,
		c.CVV,
		c.Amount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert tarjeta: %w", err)
	}
	return id, nil
}
