package handlers

import (
	"context"

	"github.com/imamik/idpctl/internal/config"
	"github.com/imamik/idpctl/internal/output"
	"github.com/imamik/idpctl/internal/platform/authentik"
	"github.com/imamik/idpctl/internal/util/naming"
)

// ProviderRequest are the parameters of the provider command.
type ProviderRequest struct {
	Name        string
	Slug        string
	RedirectURI string
}

// providerResult is the JSON emitted on success.
type providerResult struct {
	Status        string `json:"status"`
	ProviderID    int    `json:"provider_id"`
	ApplicationID string `json:"application_id"`
	ClientID      string `json:"client_id"`
	ClientSecret  string `json:"client_secret"`
	RedirectURI   string `json:"redirect_uri"`
	Issuer        string `json:"issuer"`
	DiscoveryURI  string `json:"discovery_uri"`
}

// AuthentikProvider provisions an OAuth2 provider and application pair and
// emits the resulting OIDC credentials.
func AuthentikProvider(ctx context.Context, opts Options, req ProviderRequest) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return output.Failf("%v", err)
	}
	if cfg.Authentik.URL == "" {
		return output.Failf("authentik.url is not configured")
	}

	slug := req.Slug
	if slug == "" {
		slug = naming.Slug(req.Name)
	}

	client := newAuthentikClient(cfg.Authentik.URL, cfg.Authentik.Token, log, clientOptions(cfg)...)

	if !client.WaitReady(ctx, cfg.WaitInterval(), cfg.WaitTimeout()) {
		return output.Failf("timeout waiting for Authentik at %s", cfg.Authentik.URL)
	}

	// Without a token the only useful answer is whether the instance still
	// needs its initial setup.
	if cfg.Authentik.Token == "" {
		if client.SetupNeeded(ctx) {
			return output.Fail(output.Failure{
				Error:          "authentik initial setup is pending",
				ActionRequired: "complete the initial setup flow",
				Instructions: []string{
					"Open " + cfg.Authentik.URL + "/if/flow/initial-setup/ in a browser",
					"Create the admin account (akadmin)",
					"Create an API token under Directory > Tokens",
					"Store it as authentik.token in " + config.DefaultConfigFilename + " or AUTHENTIK_TOKEN",
				},
				NextStep: "rerun this command once the token is configured",
			})
		}
		return output.Failf("authentik.token is not configured")
	}

	authzFlow, err := client.AuthorizationFlow(ctx)
	if err != nil {
		return output.Failf("%v", err)
	}

	// Older releases have no invalidation flows; the provider create payload
	// simply omits the field then.
	var invalidationFlow string
	if flow, found, err := client.FlowByDesignation(ctx, authentik.DesignationInvalidation); err == nil && found {
		invalidationFlow = flow.PK
	}

	signingKey, err := client.SigningKey(ctx)
	if err != nil {
		return output.Failf("%v", err)
	}

	provider, providerCreated, err := client.EnsureProvider(ctx, authentik.ProviderOpts{
		Name:              req.Name,
		AuthorizationFlow: authzFlow.PK,
		InvalidationFlow:  invalidationFlow,
		SigningKey:        signingKey.PK,
		RedirectURI:       req.RedirectURI,
	})
	if err != nil {
		return output.Failf("%v", err)
	}

	app, _, err := client.EnsureApplication(ctx, authentik.ApplicationOpts{
		Name:      req.Name,
		Slug:      slug,
		Provider:  provider.PK,
		LaunchURL: naming.LaunchURL(req.RedirectURI),
	})
	if err != nil {
		return output.Failf("%v", err)
	}

	status := "exists"
	if providerCreated {
		status = "created"
	}

	return output.Emit(providerResult{
		Status:        status,
		ProviderID:    provider.PK,
		ApplicationID: app.PK,
		ClientID:      provider.ClientID,
		ClientSecret:  provider.ClientSecret,
		RedirectURI:   req.RedirectURI,
		Issuer:        naming.Issuer(cfg.Authentik.URL, slug),
		DiscoveryURI:  naming.DiscoveryURI(cfg.Authentik.URL, slug),
	})
}
