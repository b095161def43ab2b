package zitadel

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/imamik/idpctl/internal/platform/apihttp"
	"github.com/imamik/idpctl/internal/reconcile"
)

// Defaults for the automation service account.
const (
	DefaultMachineUserName = "api-automation"
	DefaultMachineName     = "API Automation Service"
)

const usersPath = "/management/v1/users"

// MachineUserOpts holds the parameters for a machine user.
type MachineUserOpts struct {
	UserName    string
	Name        string
	Description string
}

// FindUser looks a user up by exact user name.
func (c *Client) FindUser(ctx context.Context, userName string) (User, bool, error) {
	return reconcile.First(ctx, "user",
		func(ctx context.Context) ([]User, error) {
			return searchResources[User](ctx, c.api, usersPath+"/_search", map[string]any{
				"queries": []map[string]any{
					{
						"userNameQuery": map[string]any{
							"userName": userName,
							"method":   "TEXT_QUERY_METHOD_EQUALS",
						},
					},
				},
			})
		},
		func(u User) bool { return u.UserName == userName })
}

// EnsureMachineUser converges a machine user. Match policy: exact user name.
func (c *Client) EnsureMachineUser(ctx context.Context, opts MachineUserOpts) (User, bool, error) {
	c.log.Infof("Ensuring machine user %q...", opts.UserName)

	return (&reconcile.EnsureOperation[User]{
		Name:         opts.UserName,
		ResourceType: "machine user",
		List: func(ctx context.Context) ([]User, error) {
			user, found, err := c.FindUser(ctx, opts.UserName)
			if err != nil || !found {
				return nil, err
			}
			return []User{user}, nil
		},
		Match: func(u User) bool {
			return u.UserName == opts.UserName
		},
		Create: func(ctx context.Context) (User, error) {
			created, err := createResource[struct {
				UserID string `json:"userId"`
			}](ctx, c.api, usersPath+"/machine", map[string]any{
				"userName":        opts.UserName,
				"name":            opts.Name,
				"description":     opts.Description,
				"accessTokenType": "ACCESS_TOKEN_TYPE_BEARER",
			})
			if err != nil {
				return User{}, err
			}
			return User{ID: created.UserID, UserName: opts.UserName}, nil
		},
		IsConflict: apihttp.IsConflict,
	}).Execute(ctx)
}

// CreateMachineKey mints a JSON key for a machine user. The key material is
// only returned once.
func (c *Client) CreateMachineKey(ctx context.Context, userID string, expiration time.Time) (MachineKey, error) {
	c.log.Infof("Creating machine key for user %s...", userID)

	created, err := createResource[struct {
		KeyID      string `json:"keyId"`
		KeyDetails string `json:"keyDetails"`
	}](ctx, c.api, fmt.Sprintf("%s/%s/keys", usersPath, userID), map[string]any{
		"type":           "KEY_TYPE_JSON",
		"expirationDate": expiration.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return MachineKey{}, fmt.Errorf("failed to create machine key: %w", err)
	}
	if created.KeyDetails == "" {
		return MachineKey{}, fmt.Errorf("machine key created but key details missing from response")
	}

	details, err := base64.StdEncoding.DecodeString(created.KeyDetails)
	if err != nil {
		return MachineKey{}, fmt.Errorf("failed to decode machine key details: %w", err)
	}
	return MachineKey{KeyID: created.KeyID, Details: details}, nil
}

// CreatePAT mints a personal access token for a machine user. The token is
// only returned once.
func (c *Client) CreatePAT(ctx context.Context, userID string, expiration time.Time) (string, error) {
	c.log.Infof("Creating personal access token for user %s...", userID)

	created, err := createResource[struct {
		Token string `json:"token"`
	}](ctx, c.api, fmt.Sprintf("%s/%s/pats", usersPath, userID), map[string]any{
		"expirationDate": expiration.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create personal access token: %w", err)
	}
	if created.Token == "" {
		return "", fmt.Errorf("personal access token created but missing from response")
	}
	return created.Token, nil
}
