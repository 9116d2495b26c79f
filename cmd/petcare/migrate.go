package main

import (
	"context"
	"time"

	"github.com/deppfellow/petcare-api/internal/config"
	"github.com/deppfellow/petcare-api/internal/database"
	"github.com/deppfellow/petcare-api/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Observability)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return database.Migrate(ctx, &log, cfg)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Give up after this long")
	return cmd
}
