package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
)

// AuthentikRecovery returns the command that checks the recovery flow.
func AuthentikRecovery() *cobra.Command {
	return &cobra.Command{
		Use:   "recovery",
		Short: "Verify a password recovery flow exists",
		Long: `Verify that a flow with the recovery designation exists and report
its slug and id.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.AuthentikRecovery(cmd.Context(), globalOpts())
		},
	}
}
