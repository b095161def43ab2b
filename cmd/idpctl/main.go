// Package main is the entry point for the idpctl CLI.
//
// idpctl provisions OIDC clients and automation credentials on identity
// providers (Authentik and Zitadel) through their admin APIs. Every command
// is idempotent: reruns converge on the existing resources instead of
// failing or duplicating them.
//
// Commands: init, authentik, zitadel, verify.
//
// For detailed usage information, run:
//
//	idpctl --help
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/imamik/idpctl/cmd/idpctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	_ = godotenv.Load()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
