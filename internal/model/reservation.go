package model

import (
	"time"

	"github.com/deppfellow/petcare-api/internal/validation"
	"github.com/shopspring/decimal"
)

// Reservation is a booked service. Price is taken from the client as-is.
type Reservation struct {
	ID        int64           `json:"id"`
	Name      string          `json:"nombre"`
	OwnerID   string          `json:"id_dueno"`
	Phone     string          `json:"telefono"`
	Email     string          `json:"correo"`
	Service   string          `json:"servicio"`
	Price     decimal.Decimal `json:"precio"`
	Date      string          `json:"fecha"`
	CreatedAt time.Time       `json:"created_at"`
}

type CreateReservationRequest struct {
	Name    Text            `json:"nombre" validate:"required"`
	OwnerID Text            `json:"id_dueno" validate:"required"`
	Phone   Text            `json:"telefono" validate:"required"`
	Email   Text            `json:"correo" validate:"required"`
	Service Text            `json:"servicio" validate:"required"`
	Price   decimal.Decimal `json:"precio" validate:"required"`
	Date    Text            `json:"fecha" validate:"required"`
}

func (r *CreateReservationRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateReservationRequest) ValidationMessage() string {
	return MsgMissingFields
}

func (r *CreateReservationRequest) ToReservation() Reservation {
	return Reservation{
		Name:    r.Name.String(),
		OwnerID: r.OwnerID.String(),
		Phone:   r.Phone.String(),
		Email:   r.Email.String(),
		Service: r.Service.String(),
		Price:   r.Price,
		Date:    r.Date.String(),
	}
}
