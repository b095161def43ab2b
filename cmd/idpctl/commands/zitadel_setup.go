package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
	"github.com/imamik/idpctl/internal/platform/zitadel"
)

// ZitadelSetup returns the command that prepares the shared project and
// grants the automation account access to it.
func ZitadelSetup() *cobra.Command {
	var (
		project     string
		serviceUser string
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Prepare the shared project for automation",
		Long: `Prepare Zitadel for automated OIDC provisioning.

Creates the shared project if missing, locates the automation service
user and grants it PROJECT_OWNER on the project. An already existing
grant is treated as success.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ZitadelSetup(cmd.Context(), globalOpts(), project, serviceUser)
		},
	}

	cmd.Flags().StringVar(&project, "project", zitadel.DefaultProjectName, "Project name")
	cmd.Flags().StringVar(&serviceUser, "service-user", zitadel.DefaultMachineUserName, "Service user name")

	return cmd
}
