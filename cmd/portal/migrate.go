package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/repository/postgres"
)

var errNoDatabase = errors.New("DATABASE_URL is required")

func newMigrateCmd(st *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the history, saved search and reading list tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !st.cfg.LibraryEnabled() {
				return errNoDatabase
			}
			if err := runMigrations(cmd.Context(), st.cfg.Database.URL); err != nil {
				return err
			}
			st.logger.Info("schema up to date", zap.String("command", "migrate"))
			return nil
		},
	}
}

func runMigrations(ctx context.Context, url string) error {
	db, err := postgres.New(ctx, url)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
