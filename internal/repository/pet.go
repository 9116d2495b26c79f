package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/petcare-api/internal/model"
)

type PetRepository struct {
	db DBTX
}

func NewPetRepository(db DBTX) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, p model.Pet) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO mascotas (
			nombre_dueno, id_dueno, correo,
			nombre_mascota, peso, edad, raza
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		p.OwnerName,
		p.OwnerID,
		p.Email,
		p.Name,
		p.Weight,
		p.Age,
		p.Breed,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert mascota: %w", err)
	}
	return id, nil
}
