package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
)

// AuthentikToken returns the command that mints an app-password API token.
//
// Required flags:
//
//	--identifier: Unique identifier of the new token
//	--password: Password of the account the token belongs to
//
// Optional flags:
//
//	--description: Token description
func AuthentikToken() *cobra.Command {
	var (
		identifier  string
		password    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an app-password API token",
		Long: `Mint an app-password API token for automation.

The token key is only returned once, on creation. Store it immediately.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.AuthentikToken(cmd.Context(), globalOpts(), identifier, password, description)
		},
	}

	cmd.Flags().StringVar(&identifier, "identifier", "", "Unique identifier of the new token")
	cmd.Flags().StringVar(&password, "password", "", "Password of the owning account")
	cmd.Flags().StringVar(&description, "description", "Automation token created by idpctl", "Token description")
	_ = cmd.MarkFlagRequired("identifier")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
