package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
)

// AuthentikMFA returns the command that enforces MFA enrollment.
func AuthentikMFA() *cobra.Command {
	return &cobra.Command{
		Use:   "mfa",
		Short: "Enforce TOTP enrollment at login",
		Long: `Enforce multi-factor authentication enrollment.

Patches the stock MFA validation stage so users without a configured
authenticator are sent through TOTP setup on their next login.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.AuthentikMFA(cmd.Context(), globalOpts())
		},
	}
}
