package main

import (
	"daily-diet/internal/adapters/storage"
	"daily-diet/internal/domain/meals"
	"daily-diet/internal/mcpserver"

	"github.com/spf13/cobra"
)

var mcpOwnerFlag string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the meal tools over MCP (stdio) for a single user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		owner := mcpOwnerFlag
		if owner == "" {
			owner = cfg.MCPOwnerID
		}

		backend, err := storage.Open(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer backend.Close()

		srv, err := mcpserver.New(meals.NewService(backend.Repo), owner, version, log)
		if err != nil {
			return err
		}

		log.Info("mcp: serving on stdio", map[string]any{"storage": string(backend.Name)})
		return srv.Start()
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpOwnerFlag, "owner", "", "user id the tools act for (env MCP_OWNER_ID)")
}
