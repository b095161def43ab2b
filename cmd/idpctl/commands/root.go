// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/idpctl/cmd/idpctl/handlers"
)

// Global flags shared by every command.
var (
	configPath string
	verbose    bool
	insecure   bool
)

// globalOpts collects the global flag values for a handler call.
func globalOpts() handlers.Options {
	return handlers.Options{
		ConfigPath: configPath,
		Verbose:    verbose,
		Insecure:   insecure,
	}
}

// Root returns the root command for the idpctl CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "idpctl",
		Short: "Provision OIDC clients on Authentik and Zitadel",
		Long: `idpctl automates identity-provider setup through admin APIs.

It provisions OIDC providers and applications, enforces login policies,
and mints automation credentials. All commands are idempotent and emit
exactly one JSON object on stdout; diagnostics go to stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: idpctl.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")

	cmd.AddCommand(Init())
	cmd.AddCommand(Authentik())
	cmd.AddCommand(Zitadel())
	cmd.AddCommand(Verify())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
