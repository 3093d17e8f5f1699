package main

import (
	"fmt"

	"daily-diet/internal/adapters/storage"
	"daily-diet/internal/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema to the configured backend",
	Long:  `Connects to the configured backend (--storage, --db-dsn, --sqlite-path) and creates or verifies the meals schema.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Storage == config.StorageMemory {
			fmt.Fprintln(cmd.OutOrStdout(), "memory storage has no schema, nothing to migrate")
			return nil
		}

		backend, err := storage.Open(cmd.Context(), cfg, true)
		if err != nil {
			return fmt.Errorf("migrate %s: %w", cfg.Storage, err)
		}
		defer backend.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", cfg.Storage)
		return nil
	},
}
