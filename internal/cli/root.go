// Package cli holds the streamhouse command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamhouse/api/internal/config"
	"streamhouse/api/internal/i18n"
	"streamhouse/api/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:          "streamhouse",
	Short:        "Live streaming REST API: accounts, OTP verification, live rooms and viewers",
	Long:         `HTTP API plus SMS worker and session pruning. Commands: serve, migrate, seed, gen-secret.`,
	RunE:         runServe, // default: same as "streamhouse serve"
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(genSecretCmd)
}

// Execute runs the root command and returns the error (for main to log.Fatal).
func Execute() error {
	return rootCmd.Execute()
}

// bootstrap loads and validates config and starts the global logger.
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := logging.Init(cfg.AppEnv); err != nil {
		return nil, err
	}
	i18n.SetDefault(cfg.AppLang)
	return cfg, nil
}
