package main

import (
	"fmt"
	"os"

	"daily-diet/internal/config"
	"daily-diet/internal/platform/logger"

	"github.com/spf13/cobra"
)

// @title Daily Diet API
// @version 1.0
// @description Registro de comidas y métricas de dieta por usuario.
// @BasePath /

var version = "0.1.0"

var (
	storageFlag    string
	dbDSNFlag      string
	sqlitePathFlag string
	portFlag       string
)

var rootCmd = &cobra.Command{
	Use:     "daily-diet",
	Short:   "Registro de comidas y rachas dentro de la dieta.",
	Version: fmt.Sprintf("v%s", version),
	// sin subcomando levanta la API
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of daily-diet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&storageFlag, "storage", "", "storage backend: memory, postgres or sqlite (env STORAGE)")
	pf.StringVar(&dbDSNFlag, "db-dsn", "", "postgres DSN (env DB_DSN)")
	pf.StringVar(&sqlitePathFlag, "sqlite-path", "", "sqlite database file (env SQLITE_PATH)")
	pf.StringVar(&portFlag, "port", "", "HTTP port (env PORT)")

	rootCmd.AddCommand(serveCmd, migrateCmd, mcpCmd, tokenCmd, versionCmd)
}

// loadConfig aplica los flags por encima de .env y del entorno.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	overrides := map[string]string{
		"storage":     "STORAGE",
		"db-dsn":      "DB_DSN",
		"sqlite-path": "SQLITE_PATH",
		"port":        "PORT",
	}
	for flag, env := range overrides {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		v, _ := cmd.Flags().GetString(flag)
		if err := os.Setenv(env, v); err != nil {
			return config.Config{}, fmt.Errorf("apply --%s: %w", flag, err)
		}
	}
	return config.Load()
}

// newLogger escribe a stderr: en modo mcp stdout es el canal del protocolo.
func newLogger(cfg config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Out:    os.Stderr,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
