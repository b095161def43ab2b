package handlers

import (
	"context"

	"github.com/imamik/idpctl/internal/output"
	"github.com/imamik/idpctl/internal/ui"
	"github.com/imamik/idpctl/internal/util/naming"
)

// Verify fetches and validates the OIDC discovery document of an issuer,
// given directly or derived from an application slug on the configured
// Authentik instance.
func Verify(ctx context.Context, opts Options, issuer, slug string) error {
	cfg, _, err := setup(opts)
	if err != nil {
		return output.Failf("%v", err)
	}

	if issuer == "" {
		if cfg.Authentik.URL == "" {
			return output.Failf("authentik.url is not configured (needed to derive the issuer from --slug)")
		}
		issuer = naming.Issuer(cfg.Authentik.URL, slug)
	}

	config, err := discoverProvider(ctx, issuer, cfg.InsecureSkipVerify)
	if err != nil {
		return output.Failf("%v", err)
	}
	if err := config.Validate(); err != nil {
		return output.Failf("%v", err)
	}

	ui.Success("Discovery document is valid")
	ui.Detail("issuer:    %s", config.Issuer)
	ui.Detail("authorize: %s", config.AuthorizationEndpoint)
	ui.Detail("token:     %s", config.TokenEndpoint)
	ui.Detail("jwks:      %s", config.JwksURI)

	return output.Emit(map[string]any{
		"status": "ok",
		"config": config,
	})
}
