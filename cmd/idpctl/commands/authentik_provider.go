package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
)

// AuthentikProvider returns the command that provisions an OAuth2 provider
// and application pair on Authentik.
//
// Required flags:
//
//	--name: Display name of the provider and application
//	--redirect-uri: OAuth redirect URI of the relying party
//
// Optional flags:
//
//	--slug: Application slug (default: derived from the name)
func AuthentikProvider() *cobra.Command {
	var (
		name        string
		slug        string
		redirectURI string
	)

	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Provision an OIDC provider and application",
		Long: `Provision an OAuth2/OIDC provider and its application entry.

Waits for Authentik to become ready, resolves the default authorization
flow and signing key, then creates the provider (matched by exact name)
and application (matched by exact slug) unless they already exist.

On success the OIDC credentials and discovery URI are printed as JSON.

Examples:
  # Provision an OIDC client for Nextcloud
  idpctl authentik provider --name Nextcloud \
    --redirect-uri https://cloud.example.com/apps/user_oidc/code`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.AuthentikProvider(cmd.Context(), globalOpts(), handlers.ProviderRequest{
				Name:        name,
				Slug:        slug,
				RedirectURI: redirectURI,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name of the provider and application")
	cmd.Flags().StringVar(&slug, "slug", "", "Application slug (default: derived from name)")
	cmd.Flags().StringVar(&redirectURI, "redirect-uri", "", "OAuth redirect URI of the relying party")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("redirect-uri")

	return cmd
}
