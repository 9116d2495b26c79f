package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/petcare-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string          `json:"nombre" validate:"required"`
	Amount decimal.Decimal `json:"monto" validate:"required"`
}

func (p *payload) Validate() error {
	return Struct(p)
}

func (p *payload) ValidationMessage() string {
	return "Por favor, complete todos los campos."
}

func bind(t *testing.T, body string, p Validatable) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())
	return BindAndValidate(c, p)
}

func TestBindAndValidate(t *testing.T) {
	p := &payload{}
	require.NoError(t, bind(t, `{"nombre":"Ana","monto":"10.50"}`, p))
	assert.Equal(t, "Ana", p.Name)
	assert.True(t, decimal.RequireFromString("10.5").Equal(p.Amount))
}

func TestBindAndValidate_ZeroDecimalIsMissing(t *testing.T) {
	err := bind(t, `{"nombre":"Ana","monto":0}`, &payload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Por favor, complete todos los campos.", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "monto", Error: "is required"}, httpErr.Errors[0])
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	err := bind(t, `{"nombre":`, &payload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "body", httpErr.Errors[0].Field)
}
