package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/petcare-api/internal/config"
	"github.com/deppfellow/petcare-api/internal/handler"
	"github.com/deppfellow/petcare-api/internal/lib/email"
	"github.com/deppfellow/petcare-api/internal/logger"
	"github.com/deppfellow/petcare-api/internal/repository"
	"github.com/deppfellow/petcare-api/internal/repository/memory"
	"github.com/deppfellow/petcare-api/internal/router"
	"github.com/deppfellow/petcare-api/internal/server"
	"github.com/deppfellow/petcare-api/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var inMemory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runServe(ctx, inMemory)
		},
	}

	cmd.Flags().BoolVar(&inMemory, "in-memory", false, "Keep registrations in process memory instead of PostgreSQL")
	return cmd
}

func runServe(ctx context.Context, inMemory bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Observability)

	mailer, err := email.NewClient(cfg, &log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		srv    *server.Server
		stores service.Stores
	)
	if inMemory {
		srv = server.NewInMemory(cfg, &log)
		store := memory.NewStore()
		stores = service.Stores{
			Pets:         store.Pets(),
			Reservations: store.Reservations(),
			Customers:    store.Customers(),
			Cards:        store.Cards(),
		}
		log.Warn().Msg("running with the in-memory store, registrations are lost on exit")
	} else {
		srv, err = server.New(cfg, &log)
		if err != nil {
			return err
		}
		// The pool stays up until Shutdown has drained in-flight requests.
		srv.DB.Start(context.WithoutCancel(ctx))
		stores = service.FromRepositories(repository.NewRepositories(srv.DB))
	}

	services := service.NewServices(cfg, stores, mailer)
	r := router.NewRouter(srv, handler.NewHandlers(srv, services))
	srv.SetupHTTPServer(r)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(err, srv.Shutdown(shutdownCtx))
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
