package model

import (
	"time"

	"github.com/deppfellow/petcare-api/internal/validation"
)

// Customer is a registered account. Password holds the digest, never the
// submitted value.
type Customer struct {
	ID             int64     `json:"id"`
	Name           string    `json:"nombre"`
	Identification string    `json:"identificacion"`
	Phone          string    `json:"celular"`
	Email          string    `json:"correo"`
	Username       string    `json:"usuario"`
	PasswordDigest string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// SecurityAnswers are the digests of the three account recovery answers.
type SecurityAnswers struct {
	Identification string
	PetDigest      string
	SingerDigest   string
	SubjectDigest  string
}

// VerificationToken is the pending email verification for an address. There
// is at most one per email; registering again replaces it.
type VerificationToken struct {
	Email     string
	Token     string
	CreatedAt time.Time
}

type RegisterCustomerRequest struct {
	Name           Text `json:"nombre" validate:"required"`
	Identification Text `json:"identificacion" validate:"required"`
	Phone          Text `json:"celular" validate:"required"`
	Email          Text `json:"correo" validate:"required"`
	Username       Text `json:"usuario" validate:"required"`
	Password       Text `json:"contrasena" validate:"required"`
	Pet            Text `json:"mascota" validate:"required"`
	Singer         Text `json:"cantante" validate:"required"`
	Subject        Text `json:"materia" validate:"required"`
}

func (r *RegisterCustomerRequest) Validate() error {
	return validation.Struct(r)
}

func (r *RegisterCustomerRequest) ValidationMessage() string {
	return MsgCustomerMissingFields
}
