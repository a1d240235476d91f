package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamhouse/api/internal/db"
	"streamhouse/api/internal/logging"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run migrations and seeds (migrate up, then roles and default accounts)",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logging.Close()

	if err := db.MigrateUp(cfg.DatabaseURL()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	gdb, err := db.InitPostgresORM(cfg.DSN())
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := db.RunSeeds(cmd.Context(), gdb); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logging.Info("Seed completed")
	return nil
}
