package model

import (
	"time"

	"github.com/deppfellow/petcare-api/internal/validation"
	"github.com/shopspring/decimal"
)

// Card is a payment card as submitted by the customer. Number and CVV are
// stored without masking or encryption.
type Card struct {
	ID             int64           `json:"id"`
	HolderName     string          `json:"nombre"`
	Identification string          `json:"identificacion"`
	Number         string          `json:"numero_tarjeta"`
	CVV            string          `json:"cvv"`
	Amount         decimal.Decimal `json:"monto"`
	CreatedAt      time.Time       `json:"created_at"`
}

type RegisterCardRequest struct {
	HolderName     Text            `json:"nombre" validate:"required"`
	Identification Text            `json:"identificacion" validate:"required"`
	Number         Text            `json:"numero_tarjeta" validate:"required"`
	CVV            Text            `json:"cvv" validate:"required"`
	Amount         decimal.Decimal `json:"monto" validate:"required"`
}

func (r *RegisterCardRequest) Validate() error {
	return validation.Struct(r)
}

func (r *RegisterCardRequest) ValidationMessage() string {
	return MsgMissingFields
}

func (r *RegisterCardRequest) ToCard() Card {
	return Card{
		HolderName:     r.HolderName.String(),
		Identification: r.Identification.String(),
		Number:         r.Number.String(),
		CVV:            r.CVV.String(),
		Amount:         r.Amount,
	}
}
