package commands

import "github.com/spf13/cobra"

// Authentik returns the parent command for Authentik operations.
func Authentik() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authentik",
		Short: "Provision OIDC clients and policies on Authentik",
	}

	cmd.AddCommand(AuthentikProvider())
	cmd.AddCommand(AuthentikInvitation())
	cmd.AddCommand(AuthentikRecovery())
	cmd.AddCommand(AuthentikMFA())
	cmd.AddCommand(AuthentikToken())

	return cmd
}
