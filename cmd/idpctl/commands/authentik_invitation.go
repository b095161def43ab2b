package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
)

// AuthentikInvitation returns the command that enables invitation-based
// enrollment.
func AuthentikInvitation() *cobra.Command {
	return &cobra.Command{
		Use:   "invitation",
		Short: "Enable invitation support on the enrollment flow",
		Long: `Enable invitation support on the enrollment flow.

Creates the default-enrollment-invitation stage if missing and binds it
to the enrollment flow at the first position. Enrollment without an
invitation keeps working; invitations become possible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.AuthentikInvitation(cmd.Context(), globalOpts())
		},
	}
}
