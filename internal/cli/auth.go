package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthVerifyCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with an identity token (creates the account on first login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = cfg.Token
			}
			if token == "" {
				return fmt.Errorf("--token is required")
			}

			req := map[string]string{"token": token}
			var result LoginResult

			if err := client.Post("/api/v1/auth/login", req, &result); err != nil {
				return err
			}

			// Save token for later commands
			if err := cfg.SaveToken(token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Identity token")

	return cmd
}

func newAuthVerifyCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an identity token and fetch (or create) the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = cfg.Token
			}
			if token == "" {
				return fmt.Errorf("--token is required")
			}

			req := map[string]string{"token": token}
			var result User

			if err := client.Post("/api/v1/auth/verify", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Identity token")

	return cmd
}
