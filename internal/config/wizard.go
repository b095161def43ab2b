package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
)

// credentialKind selects how the Zitadel client authenticates.
type credentialKind string

const (
	credentialPAT credentialKind = "pat"
	credentialKey credentialKind = "key"
)

// RunWizard walks the user through an initial configuration. Both provider
// sections are optional: leaving the endpoint empty skips the section.
func RunWizard(ctx context.Context) (*Config, error) {
	var (
		cfg        Config
		credential = credentialPAT
		insecure   bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Authentik URL").
				Description("Base URL of the Authentik instance, empty to skip").
				Placeholder("https://auth.example.com").
				Value(&cfg.Authentik.URL).
				Validate(validateOptionalURL),
			huh.NewInput().
				Title("Authentik API token").
				Description("Admin API token, empty if Authentik is not set up yet").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Authentik.Token),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Zitadel domain").
				Description("Bare instance domain, empty to skip").
				Placeholder("zitadel.example.com").
				Value(&cfg.Zitadel.Domain).
				Validate(validateOptionalDomain),
			huh.NewSelect[credentialKind]().
				Title("Zitadel credential").
				Options(
					huh.NewOption("Personal access token", credentialPAT),
					huh.NewOption("Machine-user key file", credentialKey),
				).
				Value(&credential),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Personal access token").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Zitadel.Token),
		).WithHideFunc(func() bool {
			return cfg.Zitadel.Domain == "" || credential != credentialPAT
		}),
		huh.NewGroup(
			huh.NewInput().
				Title("Key file path").
				Placeholder("/etc/idpctl/api-key.json").
				Value(&cfg.Zitadel.KeyPath),
		).WithHideFunc(func() bool {
			return cfg.Zitadel.Domain == "" || credential != credentialKey
		}),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Skip TLS certificate verification?").
				Description("Only for internal endpoints with self-signed certificates").
				Value(&insecure),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	cfg.InsecureSkipVerify = insecure
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateOptionalURL(s string) error {
	if s == "" {
		return nil
	}
	parsed, err := url.Parse(s)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("enter a full URL like https://auth.example.com")
	}
	return nil
}

func validateOptionalDomain(s string) error {
	if s == "" {
		return nil
	}
	if strings.Contains(s, "://") || strings.Contains(s, "/") {
		return fmt.Errorf("enter a bare domain like zitadel.example.com")
	}
	return nil
}
