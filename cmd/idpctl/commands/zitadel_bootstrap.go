package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
	"github.com/imamik/idpctl/internal/platform/zitadel"
)

// ZitadelBootstrap returns the command that bootstraps API access on a
// fresh instance.
//
// Required flags:
//
//	--admin-user: Admin login name
//	--admin-password: Admin password
//
// Optional flags:
//
//	--username: Machine user name (default "api-automation")
func ZitadelBootstrap() *cobra.Command {
	var (
		adminUser     string
		adminPassword string
		username      string
	)

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Bootstrap API access via the login UI",
		Long: `Bootstrap API access on a fresh Zitadel instance.

Logs in through the login UI form flow (no API credential needed yet),
creates the automation machine user and mints a long-lived personal
access token. The token is printed once; store it in the configuration
as zitadel.token.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ZitadelBootstrap(cmd.Context(), globalOpts(), handlers.BootstrapRequest{
				AdminUser:     adminUser,
				AdminPassword: adminPassword,
				UserName:      username,
			})
		},
	}

	cmd.Flags().StringVar(&adminUser, "admin-user", "", "Admin login name")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "Admin password")
	cmd.Flags().StringVar(&username, "username", zitadel.DefaultMachineUserName, "Machine user name")
	_ = cmd.MarkFlagRequired("admin-user")
	_ = cmd.MarkFlagRequired("admin-password")

	return cmd
}
