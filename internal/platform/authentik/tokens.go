package authentik

import (
	"context"
	"fmt"
)

const tokensPath = "/api/v3/core/tokens/"

// CreateAppPasswordToken mints an app-password API token for the given
// account. The token key is only returned on creation and cannot be
// recovered later.
func (c *Client) CreateAppPasswordToken(ctx context.Context, identifier, password, description string) (string, error) {
	c.log.Info("Creating service account token...")

	created, err := createResource[Token](ctx, c.api, tokensPath, map[string]any{
		"identifier":  identifier,
		"password":    password,
		"intent":      "app_password",
		"description": description,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}
	if created.Key == "" {
		return "", fmt.Errorf("token created but key missing from response")
	}
	return created.Key, nil
}
