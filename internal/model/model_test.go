package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPet() RegisterPetRequest {
	return RegisterPetRequest{
		OwnerName: "Ana",
		OwnerID:   "1001",
		Email:     "ana@example.com",
		Name:      "Firulais",
		Weight:    decimal.RequireFromString("12.5"),
		Age:       3,
		Breed:     "Criollo",
	}
}

func failedFields(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	var fields []string
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func TestRegisterPetRequest_Validate(t *testing.T) {
	req := validPet()
	require.NoError(t, req.Validate())

	tests := []struct {
		name  string
		clear func(r *RegisterPetRequest)
		field string
	}{
		{"owner name", func(r *RegisterPetRequest) { r.OwnerName = "" }, "NombreDueño"},
		{"owner id", func(r *RegisterPetRequest) { r.OwnerID = "" }, "id_dueno"},
		{"email", func(r *RegisterPetRequest) { r.Email = "" }, "Correo"},
		{"pet name", func(r *RegisterPetRequest) { r.Name = "" }, "nombre_mascota"},
		{"weight", func(r *RegisterPetRequest) { r.Weight = decimal.Zero }, "Peso"},
		{"age", func(r *RegisterPetRequest) { r.Age = 0 }, "Edad"},
		{"breed", func(r *RegisterPetRequest) { r.Breed = "" }, "Raza"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validPet()
			tt.clear(&r)
			assert.Equal(t, []string{tt.field}, failedFields(t, r.Validate()))
		})
	}
}

func TestRegisterCustomerRequest_Validate(t *testing.T) {
	var req RegisterCustomerRequest
	fields := failedFields(t, req.Validate())

	assert.ElementsMatch(t, []string{
		"nombre", "identificacion", "celular", "correo", "usuario",
		"contrasena", "mascota", "cantante", "materia",
	}, fields)
	assert.Equal(t, MsgCustomerMissingFields, req.ValidationMessage())
}

func TestRegisterCardRequest_DecodeAndValidate(t *testing.T) {
	body := `{"nombre":"Ana","identificacion":1001,"numero_tarjeta":"4111111111111111","cvv":123,"monto":"50.25"}`

	var req RegisterCardRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())

	card := req.ToCard()
	assert.Equal(t, "1001", card.Identification)
	assert.Equal(t, "123", card.CVV)
	assert.True(t, card.Amount.Equal(decimal.RequireFromString("50.25")))
}

func TestCreateReservationRequest_ZeroPrice(t *testing.T) {
	body := `{"nombre":"Ana","id_dueno":"1001","telefono":"3001234567","correo":"ana@example.com","servicio":"Baño","precio":0,"fecha":"2024-05-01"}`

	var req CreateReservationRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, []string{"precio"}, failedFields(t, req.Validate()))
}

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Text
	}{
		{`"abc"`, "abc"},
		{`42`, "42"},
		{`3.5`, "3.5"},
		{`0`, ""},
		{`0.0`, ""},
		{`"0"`, "0"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var got Text
		require.NoError(t, json.Unmarshal([]byte(tt.in), &got), tt.in)
		assert.Equal(t, tt.want, got)
	}

	var bad Text
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

func TestCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Count
	}{
		{`4`, 4},
		{`"4"`, 4},
		{`" 12 "`, 12},
		{`""`, 0},
		{`null`, 0},
		{`0`, 0},
	}
	for _, tt := range tests {
		var got Count
		require.NoError(t, json.Unmarshal([]byte(tt.in), &got), tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, in := range []string{`"cuatro"`, `4.5`, `true`} {
		var bad Count
		assert.Error(t, json.Unmarshal([]byte(in), &bad), in)
	}
}
