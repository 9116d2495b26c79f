package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/petcare-api/internal/middleware"
	"github.com/deppfellow/petcare-api/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service and its database are usable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth answers 200 when every check passes and 503 otherwise. In
// in-memory mode the database check is reported as disabled.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}
	isHealthy := true

	db := h.server.DB
	if db == nil {
		checks["database"] = map[string]interface{}{
			"status": "disabled",
		}
	} else {
		timeout := h.server.Config.Observability.HealthChecks.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		dbStart := time.Now()
		check := map[string]interface{}{
			"state": db.State().String(),
		}

		if err := db.Ping(ctx); err != nil {
			check["status"] = "unhealthy"
			check["error"] = err.Error()
			isHealthy = false

			logger.Error().
				Err(err).
				Str("state", db.State().String()).
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check failed")
		} else {
			check["status"] = "healthy"
			if stat := db.Stat(); stat != nil {
				check["pool"] = map[string]interface{}{
					"total_conns":    stat.TotalConns(),
					"idle_conns":     stat.IdleConns(),
					"acquired_conns": stat.AcquiredConns(),
					"max_conns":      stat.MaxConns(),
				}
			}

			logger.Debug().
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check passed")
		}
		check["response_time"] = time.Since(dbStart).String()
		checks["database"] = check
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
