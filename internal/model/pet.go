package model

import (
	"time"

	"github.com/deppfellow/petcare-api/internal/validation"
	"github.com/shopspring/decimal"
)

type Pet struct {
	ID        int64           `json:"id"`
	OwnerName string          `json:"nombre_dueno"`
	OwnerID   string          `json:"id_dueno"`
	Email     string          `json:"correo"`
	Name      string          `json:"nombre_mascota"`
	Weight    decimal.Decimal `json:"peso"`
	Age       int             `json:"edad"`
	Breed     string          `json:"raza"`
	CreatedAt time.Time       `json:"created_at"`
}

// RegisterPetRequest is the body of POST /register-mascota. Field names
// follow the mixed casing clients already send.
type RegisterPetRequest struct {
	OwnerName Text            `json:"NombreDueño" validate:"required"`
	OwnerID   Text            `json:"id_dueno" validate:"required"`
	Email     Text            `json:"Correo" validate:"required"`
	Name      Text            `json:"nombre_mascota" validate:"required"`
	Weight    decimal.Decimal `json:"Peso" validate:"required"`
	Age       Count           `json:"Edad" validate:"required"`
	Breed     Text            `json:"Raza" validate:"required"`
}

func (r *RegisterPetRequest) Validate() error {
	return validation.Struct(r)
}

func (r *RegisterPetRequest) ValidationMessage() string {
	return MsgMissingFields
}

func (r *RegisterPetRequest) ToPet() Pet {
	return Pet{
		OwnerName: r.OwnerName.String(),
		OwnerID:   r.OwnerID.String(),
		Email:     r.Email.String(),
		Name:      r.Name.String(),
		Weight:    r.Weight,
		Age:       r.Age.Int(),
		Breed:     r.Breed.String(),
	}
}
