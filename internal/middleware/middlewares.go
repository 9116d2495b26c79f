package middleware

import (
	"github.com/deppfellow/petcare-api/internal/server"
)

// Middlewares groups the middleware components used by the HTTP server so
// router setup receives them as one value.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers, the
	// request timeout and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches a request-scoped logger to every request.
	ContextEnhancer *ContextEnhancer

	// RateLimit enforces the per-IP request budget.
	RateLimit *RateLimitMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
