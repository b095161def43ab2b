package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
)

// Verify returns the command that checks a provisioned OIDC client via its
// discovery document.
//
// Flags (one of):
//
//	--issuer: Full issuer URL to check
//	--slug: Application slug on the configured Authentik instance
func Verify() *cobra.Command {
	var (
		issuer string
		slug   string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an OIDC issuer via its discovery document",
		Long: `Verify that an OIDC issuer serves a valid discovery document.

Fetches {issuer}/.well-known/openid-configuration and checks that the
required endpoints are present. The issuer can be given directly or
derived from an application slug on the configured Authentik instance.

Examples:
  idpctl verify --issuer https://auth.example.com/application/o/nextcloud/
  idpctl verify --slug nextcloud`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Verify(cmd.Context(), globalOpts(), issuer, slug)
		},
	}

	cmd.Flags().StringVar(&issuer, "issuer", "", "Issuer URL to check")
	cmd.Flags().StringVar(&slug, "slug", "", "Application slug on the configured Authentik instance")
	cmd.MarkFlagsOneRequired("issuer", "slug")
	cmd.MarkFlagsMutuallyExclusive("issuer", "slug")

	return cmd
}
