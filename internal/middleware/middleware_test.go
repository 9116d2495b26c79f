package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/petcare-api/internal/config"
	"github.com/deppfellow/petcare-api/internal/errs"
	"github.com/deppfellow/petcare-api/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	logger := zerolog.Nop()
	return server.NewInMemory(config.Default(), &logger)
}

func handleError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	NewGlobalMiddlewares(newTestServer(t)).GlobalErrorHandler(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestGlobalErrorHandler(t *testing.T) {
	t.Run("store error hides cause", func(t *testing.T) {
		status, body := handleError(t, errs.NewStoreError("Error al registrar la tarjeta.", errors.New("password authentication failed")))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Error al registrar la tarjeta.", body["message"])
		assert.Equal(t, "STORE_ERROR", body["code"])
	})

	t.Run("route not found", func(t *testing.T) {
		status, body := handleError(t, echo.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})

	t.Run("unique violation", func(t *testing.T) {
		status, body := handleError(t, &pgconn.PgError{Code: "23505", TableName: "clientes"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, false, body["success"])
	})

	t.Run("unknown error", func(t *testing.T) {
		status, body := handleError(t, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, http.StatusText(http.StatusInternalServerError), body["message"])
	})
}

func TestRequestTimeout(t *testing.T) {
	s := newTestServer(t)
	s.Config.Server.RequestTimeout = 10 * time.Millisecond

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(NewGlobalMiddlewares(s).RequestTimeout())
	e.GET("/slow", func(c echo.Context) error {
		<-c.Request().Context().Done()
		return c.Request().Context().Err()
	})
	e.GET("/shaped", func(c echo.Context) error {
		<-c.Request().Context().Done()
		return errs.NewStoreError("Error al registrar la reserva.", context.DeadlineExceeded)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shaped", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error al registrar la reserva.")
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestEnhanceContext_AttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	s := server.NewInMemory(config.Default(), &logger)

	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	e.GET("/pets", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("from service")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/pets", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	e.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "from service", entry["message"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "/pets", entry["path"])
}
