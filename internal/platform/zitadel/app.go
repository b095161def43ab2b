package zitadel

import (
	"context"
	"fmt"

	"github.com/imamik/idpctl/internal/platform/apihttp"
	"github.com/imamik/idpctl/internal/reconcile"
	"github.com/imamik/idpctl/internal/util/naming"
)

// OIDCAppOpts holds the parameters for an OIDC application.
type OIDCAppOpts struct {
	Name        string
	RedirectURI string
}

// oidcAppCreate is the create payload: a confidential web app using the
// authorization code flow with refresh tokens.
type oidcAppCreate struct {
	Name                     string   `json:"name"`
	RedirectURIs             []string `json:"redirectUris"`
	ResponseTypes            []string `json:"responseTypes"`
	GrantTypes               []string `json:"grantTypes"`
	AppType                  string   `json:"appType"`
	AuthMethodType           string   `json:"authMethodType"`
	PostLogoutRedirectURIs   []string `json:"postLogoutRedirectUris"`
	Version                  string   `json:"version"`
	DevMode                  bool     `json:"devMode"`
	AccessTokenType          string   `json:"accessTokenType"`
	AccessTokenRoleAssertion bool     `json:"accessTokenRoleAssertion"`
	IDTokenRoleAssertion     bool     `json:"idTokenRoleAssertion"`
	IDTokenUserinfoAssertion bool     `json:"idTokenUserinfoAssertion"`
	ClockSkew                string   `json:"clockSkew"`
}

// appListEntry is the shape _search returns, which nests the OIDC config.
type appListEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OIDCConfig struct {
		ClientID string `json:"clientId"`
	} `json:"oidcConfig"`
}

// ListOIDCApps returns the apps of a project.
func (c *Client) ListOIDCApps(ctx context.Context, projectID string) ([]OIDCApp, error) {
	entries, err := searchResources[appListEntry](ctx, c.api,
		fmt.Sprintf("%s/%s/apps/_search", projectsPath, projectID), nil)
	if err != nil {
		return nil, err
	}
	apps := make([]OIDCApp, 0, len(entries))
	for _, e := range entries {
		apps = append(apps, OIDCApp{ID: e.ID, Name: e.Name, ClientID: e.OIDCConfig.ClientID})
	}
	return apps, nil
}

// EnsureOIDCApp converges an OIDC application within a project. Match
// policy: exact name. The client secret is only available when the app is
// created in this run; reruns find the existing app without it.
func (c *Client) EnsureOIDCApp(ctx context.Context, projectID string, opts OIDCAppOpts) (OIDCApp, bool, error) {
	c.log.Infof("Ensuring OIDC app %q in project %s...", opts.Name, projectID)

	return (&reconcile.EnsureOperation[OIDCApp]{
		Name:         opts.Name,
		ResourceType: "OIDC app",
		List: func(ctx context.Context) ([]OIDCApp, error) {
			return c.ListOIDCApps(ctx, projectID)
		},
		Match: func(a OIDCApp) bool {
			return a.Name == opts.Name
		},
		Create: func(ctx context.Context) (OIDCApp, error) {
			created, err := createResource[OIDCApp](ctx, c.api,
				fmt.Sprintf("%s/%s/apps/oidc", projectsPath, projectID), oidcAppCreate{
					Name:          opts.Name,
					RedirectURIs:  []string{opts.RedirectURI},
					ResponseTypes: []string{"OIDC_RESPONSE_TYPE_CODE"},
					GrantTypes: []string{
						"OIDC_GRANT_TYPE_AUTHORIZATION_CODE",
						"OIDC_GRANT_TYPE_REFRESH_TOKEN",
					},
					AppType:                  "OIDC_APP_TYPE_WEB",
					AuthMethodType:           "OIDC_AUTH_METHOD_TYPE_BASIC",
					PostLogoutRedirectURIs:   []string{naming.PostLogoutRedirectURI(opts.RedirectURI)},
					Version:                  "OIDC_VERSION_1_0",
					DevMode:                  false,
					AccessTokenType:          "OIDC_TOKEN_TYPE_BEARER",
					AccessTokenRoleAssertion: true,
					IDTokenRoleAssertion:     true,
					IDTokenUserinfoAssertion: true,
					ClockSkew:                "0s",
				})
			if err != nil {
				return OIDCApp{}, err
			}
			created.Name = opts.Name
			return created, nil
		},
		IsConflict: apihttp.IsConflict,
	}).Execute(ctx)
}
