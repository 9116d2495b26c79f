// Package router builds the echo instance: it installs the middleware chain
// and registers the system and registration routes.
package router

import (
	"github.com/deppfellow/petcare-api/internal/handler"
	"github.com/deppfellow/petcare-api/internal/middleware"
	"github.com/deppfellow/petcare-api/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.Global.RequestTimeout(),
	)

	registerSystemRoutes(router, h)
	registerRegistrationRoutes(router, h, middlewares.RateLimit.Limit())

	return router
}
