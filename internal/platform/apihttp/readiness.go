package apihttp

import (
	"context"
	"net/http"
	"time"

	"github.com/imamik/idpctl/internal/util/poll"
)

// WaitReady polls path at a fixed interval until the service answers 200 or
// 302, or the timeout elapses. Returns true as soon as one probe succeeds.
func (c *Client) WaitReady(ctx context.Context, path string, interval, timeout time.Duration) bool {
	return poll.Until(ctx, func(ctx context.Context) bool {
		resp := c.Do(ctx, http.MethodGet, path, nil)
		return resp.Status == http.StatusOK || resp.Status == http.StatusFound
	}, poll.WithInterval(interval), poll.WithTimeout(timeout))
}
