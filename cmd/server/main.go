// Command server runs the reservation HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/booking-reservation/internal/config"
	"github.com/iliyamo/booking-reservation/internal/database"
	"github.com/iliyamo/booking-reservation/internal/observability"
	"github.com/iliyamo/booking-reservation/internal/repository"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd serves by default; "migrate" only creates the schema.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "booking-server",
		Short:         "Restaurant reservation API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the reservations table if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cfg.DBDriver == config.DriverMemory {
				logger.Info("memory store has no schema; nothing to migrate")
				return nil
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.EnsureSchema(cmd.Context(), db); err != nil {
				return err
			}
			logger.Info("schema ready", zap.String("driver", cfg.DBDriver))
			return nil
		},
	}
}

func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger.With(zap.String("env", cfg.Env)), nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return database.OpenSQLite(cfg.SQLitePath)
	default:
		return database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
}

// openStore returns the configured store and a function releasing it.
func openStore(ctx context.Context, cfg config.Config) (repository.Store, func() error, error) {
	if cfg.DBDriver == config.DriverMemory {
		return repository.NewMemoryStore(), func() error { return nil }, nil
	}
	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := database.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	return repository.NewSQLStore(db), db.Close, nil
}
