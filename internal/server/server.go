// Package server defines the Server container that composes the app's main
// dependencies, plus the HTTP server start and graceful shutdown logic.
//
// It owns the lifecycle of:
//   - configuration
//   - the root logger
//   - the supervised database connection (absent in in-memory mode)
//   - the http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/petcare-api/internal/config"
	"github.com/deppfellow/petcare-api/internal/database"
	"github.com/rs/zerolog"
)

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// DB is nil when the server runs on the in-memory store.
	DB *database.Database

	httpServer *http.Server
}

// New builds a Server backed by PostgreSQL. The connection is not opened
// here; call DB.Start to begin connecting.
func New(cfg *config.Config, logger *zerolog.Logger) (*Server, error) {
	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config: cfg,
		Logger: logger,
		DB:     db,
	}, nil
}

// NewInMemory builds a Server without a database.
func NewInMemory(cfg *config.Config, logger *zerolog.Logger) *Server {
	return &Server{
		Config: cfg,
		Logger: logger,
	}
}

// SetupHTTPServer configures the internal net/http server. Config timeouts
// are in seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Bool("in_memory", s.DB == nil).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx is
// done, then closes the database.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}
