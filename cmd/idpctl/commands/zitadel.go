package commands

import "github.com/spf13/cobra"

// Zitadel returns the parent command for Zitadel operations.
func Zitadel() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zitadel",
		Short: "Provision OIDC apps and automation credentials on Zitadel",
	}

	cmd.AddCommand(ZitadelApp())
	cmd.AddCommand(ZitadelMachineUser())
	cmd.AddCommand(ZitadelSetup())
	cmd.AddCommand(ZitadelBootstrap())

	return cmd
}
