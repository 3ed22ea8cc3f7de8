package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/clinic-readiness-api/pkg/config"
	"github.com/noah-isme/clinic-readiness-api/pkg/database"
	"github.com/noah-isme/clinic-readiness-api/pkg/logger"
	"github.com/noah-isme/clinic-readiness-api/pkg/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [" + strings.Join(migrations.Commands, "|") + "]",
		Short:     "Apply or inspect PostgreSQL schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrations.Commands,
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd.Context(), args[0])
		},
	}
}

func migrate(ctx context.Context, command string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	return migrations.Run(ctx, db.DB, command, logr)
}
