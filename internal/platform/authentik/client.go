// Package authentik is a client for the Authentik admin API (v3).
package authentik

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/imamik/idpctl/internal/platform/apihttp"
)

// Client wraps the Authentik v3 admin API.
type Client struct {
	api *apihttp.Client
	log *zap.SugaredLogger
}

// New creates an Authentik client for the given base URL. An empty token is
// allowed for the readiness and initial-setup probes, which are
// unauthenticated.
func New(baseURL, token string, log *zap.SugaredLogger, opts ...apihttp.Option) *Client {
	if token != "" {
		opts = append([]apihttp.Option{apihttp.WithToken(token)}, opts...)
	}
	return &Client{
		api: apihttp.NewClient(baseURL, opts...),
		log: log,
	}
}

// BaseURL returns the Authentik base URL.
func (c *Client) BaseURL() string {
	return c.api.BaseURL()
}

// WaitReady polls the root endpoint until Authentik responds with 200 or 302.
func (c *Client) WaitReady(ctx context.Context, interval, timeout time.Duration) bool {
	c.log.Infof("Waiting for Authentik at %s to be ready...", c.api.BaseURL())
	if !c.api.WaitReady(ctx, "/", interval, timeout) {
		c.log.Errorf("Timeout waiting for Authentik after %s", timeout)
		return false
	}
	c.log.Info("Authentik is ready")
	return true
}

// SetupNeeded reports whether the initial-setup flow is still pending.
// The setup page answers 200 until an admin account exists, 302 or 404
// afterwards.
func (c *Client) SetupNeeded(ctx context.Context) bool {
	resp := c.api.Do(ctx, http.MethodGet, "/if/flow/initial-setup/", nil)
	return resp.Status == http.StatusOK
}

// paginated is the envelope Authentik wraps every listing endpoint in.
type paginated[T any] struct {
	Results []T `json:"results"`
}

// listResources fetches a listing endpoint and unwraps its results.
func listResources[T any](ctx context.Context, api *apihttp.Client, path string) ([]T, error) {
	resp := api.Do(ctx, http.MethodGet, path, nil)
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var page paginated[T]
	if err := resp.Decode(&page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// createResource posts a payload and decodes the created resource.
func createResource[T any](ctx context.Context, api *apihttp.Client, path string, payload any) (T, error) {
	var zero T
	resp := api.Do(ctx, http.MethodPost, path, payload)
	if err := resp.Err(); err != nil {
		return zero, err
	}
	var created T
	if err := resp.Decode(&created); err != nil {
		return zero, err
	}
	return created, nil
}
