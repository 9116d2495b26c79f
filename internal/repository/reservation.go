package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/petcare-api/internal/model"
)

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res model.Reservation) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO reservas (
			nombre, id_dueno, telefono, correo,
			servicio, precio, fecha
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		res.Name,
		res.OwnerID,
		res.Phone,
		res.Email,
		res.Service,
		res.Price,
		res.Date,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert reserva: %w", err)
	}
	return id, nil
}
