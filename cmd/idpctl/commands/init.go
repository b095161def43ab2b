package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
)

// Init returns the command for interactively creating a configuration file.
//
// Flags:
//
//	--output, -o: Path to output file (default "idpctl.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create an idpctl configuration file.

The wizard asks for the identity-provider endpoints and credentials:

  - Authentik base URL and admin API token
  - Zitadel domain and either a personal access token or a
    machine-user key file
  - whether to skip TLS verification (self-signed endpoints only)

Sections can be left empty and filled in later, either in the file or
via environment variables (AUTHENTIK_URL, AUTHENTIK_TOKEN,
ZITADEL_DOMAIN, ZITADEL_TOKEN, ZITADEL_KEY_PATH).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "idpctl.yaml", "Output file path")

	return cmd
}
