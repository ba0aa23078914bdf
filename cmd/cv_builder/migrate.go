package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/cv-builder/internal/db"
	"github.com/spf13/cobra"
)

var migrateDatabaseURL string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Apply all pending schema migrations to the PostgreSQL database.`,
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	databaseURL := migrateDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (--db-url or DATABASE_URL)")
	}

	if err := db.Migrate(context.Background(), databaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println("Migrations applied.")
	return nil
}
