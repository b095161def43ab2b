package zitadel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// tokenScope requests the management API audience alongside the standard
// OIDC scopes.
const tokenScope = "openid profile email urn:zitadel:iam:org:project:id:zitadel:aud"

const assertionLifetime = time.Hour

// Key is a machine-user key file as downloaded from the console or minted
// via CreateMachineKey.
type Key struct {
	Type   string `json:"type"`
	KeyID  string `json:"keyId"`
	Key    string `json:"key"`
	UserID string `json:"userId"`
}

// LoadKey reads a machine-user key file.
func LoadKey(path string) (Key, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is operator-provided
	if err != nil {
		return Key{}, fmt.Errorf("failed to read key file: %w", err)
	}
	var key Key
	if err := json.Unmarshal(data, &key); err != nil {
		return Key{}, fmt.Errorf("failed to parse key file %s: %w", path, err)
	}
	if key.UserID == "" || key.KeyID == "" || key.Key == "" {
		return Key{}, fmt.Errorf("key file %s is missing userId, keyId or key", path)
	}
	return key, nil
}

// assertion builds the signed JWT the token endpoint accepts in place of a
// client secret. Issuer and subject are both the machine user id, the
// audience is the bare instance domain.
func (c *Client) assertion(key Key) (string, error) {
	privKey, err := jwk.ParseKey([]byte(key.Key), jwk.WithPEM(true))
	if err != nil {
		return "", fmt.Errorf("failed to parse private key: %w", err)
	}
	if err := privKey.Set(jwk.KeyIDKey, key.KeyID); err != nil {
		return "", fmt.Errorf("failed to set key id: %w", err)
	}

	now := time.Now()
	token, err := jwt.NewBuilder().
		Issuer(key.UserID).
		Subject(key.UserID).
		Audience([]string{c.domain}).
		IssuedAt(now).
		Expiration(now.Add(assertionLifetime)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build assertion: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, privKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign assertion: %w", err)
	}
	return string(signed), nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AccessTokenFromKey exchanges a machine-user key for an access token via
// the JWT bearer grant.
func (c *Client) AccessTokenFromKey(ctx context.Context, key Key) (string, error) {
	c.log.Debugf("Requesting access token for machine user %s...", key.UserID)

	signed, err := c.assertion(key)
	if err != nil {
		return "", err
	}

	resp := c.api.PostForm(ctx, "/oauth/v2/token", url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {signed},
		"scope":      {tokenScope},
	})
	if err := resp.Err(); err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}

	var token tokenResponse
	if err := resp.Decode(&token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access_token")
	}
	return token.AccessToken, nil
}

// PasswordToken exchanges admin credentials for an access token via the
// resource owner password grant.
func (c *Client) PasswordToken(ctx context.Context, username, password string) (string, error) {
	c.log.Debugf("Requesting access token for %s...", username)

	resp := c.api.PostForm(ctx, "/oauth/v2/token", url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
		"scope":      {tokenScope},
	})
	if err := resp.Err(); err != nil {
		return "", fmt.Errorf("failed to get admin token: %w", err)
	}

	var token tokenResponse
	if err := resp.Decode(&token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access_token")
	}
	return token.AccessToken, nil
}

// Login drives the login UI form flow and leaves the session cookies in the
// client's jar. Only useful on a client built with NewBootstrap.
func (c *Client) Login(ctx context.Context, username, password string) error {
	c.log.Infof("Logging in to %s as %s...", c.domain, username)

	resp := c.api.Do(ctx, http.MethodGet, "/ui/login/loginname", nil)
	if resp.Status == 0 {
		return fmt.Errorf("failed to reach login page: %w", resp.Err())
	}

	resp = c.api.PostForm(ctx, "/ui/login/loginname", url.Values{
		"loginName": {username},
	})
	if !resp.OK() {
		return fmt.Errorf("login name step failed: %w", resp.Err())
	}

	resp = c.api.PostForm(ctx, "/ui/login/password", url.Values{
		"password": {password},
	})
	if !resp.OK() {
		return fmt.Errorf("password step failed: %w", resp.Err())
	}

	c.log.Info("Login successful")
	return nil
}
