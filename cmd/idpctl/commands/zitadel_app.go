package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
	"github.com/imamik/idpctl/internal/platform/zitadel"
)

// ZitadelApp returns the command that provisions an OIDC application.
//
// Required flags:
//
//	--name: Application name
//	--redirect-uri: OAuth redirect URI of the relying party
//
// Optional flags:
//
//	--project: Project name (default "SSO Applications")
func ZitadelApp() *cobra.Command {
	var (
		name        string
		redirectURI string
		project     string
	)

	cmd := &cobra.Command{
		Use:   "app",
		Short: "Provision an OIDC application",
		Long: `Provision an OIDC web application in a Zitadel project.

Authenticates with the configured personal access token or machine-user
key, creates the project if missing (matched by exact name) and the
application (matched by exact name) unless it already exists.

The client secret is only available when the app is created in this
run; on reruns the existing app is reported without it.

Examples:
  idpctl zitadel app --name Nextcloud \
    --redirect-uri https://cloud.example.com/apps/user_oidc/code`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ZitadelApp(cmd.Context(), globalOpts(), handlers.AppRequest{
				Name:        name,
				RedirectURI: redirectURI,
				Project:     project,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Application name")
	cmd.Flags().StringVar(&redirectURI, "redirect-uri", "", "OAuth redirect URI of the relying party")
	cmd.Flags().StringVar(&project, "project", zitadel.DefaultProjectName, "Project name")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("redirect-uri")

	return cmd
}
