package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamhouse/api/internal/db"
	"streamhouse/api/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigrateUp,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations (default one step)",
	RunE:  runMigrateDown,
}

var downSteps int

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logging.Close()

	if err := db.MigrateUp(cfg.DatabaseURL()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logging.Info("Migrations applied")
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	if downSteps < 1 {
		return fmt.Errorf("migrate: --steps must be at least 1")
	}
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logging.Close()

	if err := db.MigrateDown(cfg.DatabaseURL(), downSteps); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logging.Info("Migrations rolled back", "steps", downSteps)
	return nil
}
