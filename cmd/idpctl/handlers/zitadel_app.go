package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/imamik/idpctl/internal/config"
	"github.com/imamik/idpctl/internal/output"
	"github.com/imamik/idpctl/internal/platform/zitadel"
)

// AppRequest are the parameters of the zitadel app command.
type AppRequest struct {
	Name        string
	RedirectURI string
	Project     string
}

// appResult is the JSON emitted on success.
type appResult struct {
	Status       string `json:"status"`
	ProjectID    string `json:"project_id"`
	AppID        string `json:"app_id"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret,omitempty"`
	RedirectURI  string `json:"redirect_uri"`
	Note         string `json:"note,omitempty"`
}

// zitadelAPIClient builds an authenticated management API client from the
// configured credential: a PAT directly, or a machine-user key exchanged for
// an access token.
func zitadelAPIClient(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (*zitadel.Client, error) {
	if err := cfg.RequireZitadel(); err != nil {
		return nil, err
	}

	token := cfg.Zitadel.Token
	if token == "" {
		key, err := loadZitadelKey(cfg.Zitadel.KeyPath)
		if err != nil {
			return nil, err
		}
		auth := newZitadelClient(cfg.Zitadel.Domain, "", log, clientOptions(cfg)...)
		token, err = auth.AccessTokenFromKey(ctx, key)
		if err != nil {
			return nil, err
		}
	}
	return newZitadelClient(cfg.Zitadel.Domain, token, log, clientOptions(cfg)...), nil
}

// ZitadelApp provisions an OIDC web application in the shared project and
// emits its credentials.
func ZitadelApp(ctx context.Context, opts Options, req AppRequest) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return output.Failf("%v", err)
	}

	client, err := zitadelAPIClient(ctx, cfg, log)
	if err != nil {
		return output.Failf("%v", err)
	}

	projectName := req.Project
	if projectName == "" {
		projectName = zitadel.DefaultProjectName
	}

	project, _, err := client.EnsureProject(ctx, projectName)
	if err != nil {
		return output.Failf("%v", err)
	}

	app, created, err := client.EnsureOIDCApp(ctx, project.ID, zitadel.OIDCAppOpts{
		Name:        req.Name,
		RedirectURI: req.RedirectURI,
	})
	if err != nil {
		return output.Failf("%v", err)
	}

	result := appResult{
		Status:       "exists",
		ProjectID:    project.ID,
		AppID:        app.ID,
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
		RedirectURI:  req.RedirectURI,
	}
	if created {
		result.Status = "created"
	} else {
		result.Note = "client_secret is only returned when the app is created"
	}
	return output.Emit(result)
}
