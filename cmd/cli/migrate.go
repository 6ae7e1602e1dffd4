package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/goscheduler/internal/infrastructure/config"
	"github.com/iho/goscheduler/internal/infrastructure/postgres"
)

var (
	runMigrationsUp   = postgres.RunMigrations
	runMigrationsDown = postgres.RunMigrationsDown
)

func newMigrateCmd(opts *options) *cobra.Command {
	var databaseURL, path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	resolve := func() (string, string, error) {
		cfg, err := config.Load()
		if err != nil {
			return "", "", fmt.Errorf("failed to load configuration: %w", err)
		}

		if databaseURL == "" {
			databaseURL = cfg.DatabaseURL
		}
		if path == "" {
			path = cfg.MigrationsPath
		}

		return databaseURL, path, nil
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: opts.out}).With().Timestamp().Logger()

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, migrationsPath, err := resolve()
			if err != nil {
				return err
			}
			return runMigrationsUp(dbURL, migrationsPath, logger)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, migrationsPath, err := resolve()
			if err != nil {
				return err
			}
			return runMigrationsDown(dbURL, migrationsPath, logger)
		},
	}

	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database URL (defaults to DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&path, "path", "", "Migrations directory (defaults to MIGRATIONS_PATH)")
	cmd.AddCommand(up, down)

	return cmd
}
