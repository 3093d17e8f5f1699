package main

import (
	"errors"
	"fmt"
	"time"

	"daily-diet/internal/adapters/auth/jwtauth"

	"github.com/spf13/cobra"
)

var (
	tokenEmailFlag string
	tokenTTLFlag   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token [user-id]",
	Short: "Issue a signed access token for a user (uses JWT_SECRET)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set")
		}

		tok, err := jwtauth.NewVerifier(cfg.JWTSecret).Issue(args[0], tokenEmailFlag, tokenTTLFlag)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmailFlag, "email", "", "optional email claim")
	tokenCmd.Flags().DurationVar(&tokenTTLFlag, "ttl", 24*time.Hour, "token lifetime")
}
