// Package poll provides fixed-interval polling bounded by a deadline.
//
// Unlike a general retry primitive there is no backoff and no jitter:
// provisioning runs are one-shot, and the only thing worth waiting for is a
// service that is still starting up.
package poll

import (
	"context"
	"time"
)

// Config holds polling configuration.
type Config struct {
	Interval time.Duration
	Timeout  time.Duration
}

// Option is a functional option for polling configuration.
type Option func(*Config)

// WithInterval sets the delay between probes.
func WithInterval(d time.Duration) Option {
	return func(c *Config) {
		c.Interval = d
	}
}

// WithTimeout sets the overall deadline for polling.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// Until probes at a fixed interval until probe returns true or the timeout
// elapses. The first probe is issued immediately. Returns true as soon as a
// single probe succeeds, false once the deadline passes or the context is
// cancelled.
func Until(ctx context.Context, probe func(context.Context) bool, opts ...Option) bool {
	cfg := &Config{
		Interval: 5 * time.Second,
		Timeout:  300 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	for {
		if probe(ctx) {
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(cfg.Interval):
		}
	}
}
