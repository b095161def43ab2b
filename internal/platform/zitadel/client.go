// Package zitadel is a client for the Zitadel management API (v1).
package zitadel

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/imamik/idpctl/internal/platform/apihttp"
)

// Client wraps the Zitadel management API of one instance.
type Client struct {
	api    *apihttp.Client
	log    *zap.SugaredLogger
	domain string
}

// New creates a Zitadel client for the given instance domain. A bare domain
// is reached over TLS; an explicit scheme is kept as-is. The bare domain is
// what token assertions use as their audience.
func New(domain, token string, log *zap.SugaredLogger, opts ...apihttp.Option) *Client {
	base := strings.TrimRight(domain, "/")
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	bare := strings.TrimPrefix(strings.TrimPrefix(base, "https://"), "http://")
	if token != "" {
		opts = append([]apihttp.Option{apihttp.WithToken(token)}, opts...)
	}
	return &Client{
		api:    apihttp.NewClient(base, opts...),
		log:    log,
		domain: bare,
	}
}

// NewBootstrap creates a client for the interactive login bootstrap path. It
// carries a cookie jar and follows redirects like a browser, because the
// login UI is the only way in before any API credential exists.
func NewBootstrap(domain string, log *zap.SugaredLogger, opts ...apihttp.Option) *Client {
	opts = append([]apihttp.Option{apihttp.WithCookieJar(), apihttp.WithFollowRedirects()}, opts...)
	return New(domain, "", log, opts...)
}

// Domain returns the bare instance domain.
func (c *Client) Domain() string {
	return c.domain
}

// searchResult is the envelope the management API wraps _search responses in.
type searchResult[T any] struct {
	Result []T `json:"result"`
}

// searchResources posts a search payload and unwraps the result list.
func searchResources[T any](ctx context.Context, api *apihttp.Client, path string, payload any) ([]T, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	resp := api.Do(ctx, http.MethodPost, path, payload)
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var page searchResult[T]
	if err := resp.Decode(&page); err != nil {
		return nil, err
	}
	return page.Result, nil
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
