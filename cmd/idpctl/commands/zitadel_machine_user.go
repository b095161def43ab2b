package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
	"github.com/imamik/idpctl/internal/platform/zitadel"
)

// ZitadelMachineUser returns the command that provisions the automation
// service account and mints its JSON key.
//
// Required flags:
//
//	--admin-user: Admin login name
//	--admin-password: Admin password
//
// Optional flags:
//
//	--username: Machine user name (default "api-automation")
//	--key-output: Write the key JSON to this file instead of stdout
func ZitadelMachineUser() *cobra.Command {
	var (
		adminUser     string
		adminPassword string
		username      string
		keyOutput     string
	)

	cmd := &cobra.Command{
		Use:   "machine-user",
		Short: "Create the automation service account and key",
		Long: `Create a machine user and mint a JSON key for API automation.

Authenticates with the admin password grant, creates the machine user
unless it already exists, then mints a machine key. The key material is
only returned once.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ZitadelMachineUser(cmd.Context(), globalOpts(), handlers.MachineUserRequest{
				AdminUser:     adminUser,
				AdminPassword: adminPassword,
				UserName:      username,
				KeyOutput:     keyOutput,
			})
		},
	}

	cmd.Flags().StringVar(&adminUser, "admin-user", "", "Admin login name")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "Admin password")
	cmd.Flags().StringVar(&username, "username", zitadel.DefaultMachineUserName, "Machine user name")
	cmd.Flags().StringVar(&keyOutput, "key-output", "", "Write the key JSON to this file instead of stdout")
	_ = cmd.MarkFlagRequired("admin-user")
	_ = cmd.MarkFlagRequired("admin-password")

	return cmd
}
