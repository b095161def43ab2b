// Package config holds the idpctl configuration: endpoints and credentials
// of the identity providers under management.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default readiness polling parameters.
const (
	DefaultWaitInterval = 5 * time.Second
	DefaultWaitTimeout  = 300 * time.Second
)

// Config is the root configuration.
type Config struct {
	Authentik Authentik `yaml:"authentik"`
	Zitadel   Zitadel   `yaml:"zitadel"`

	// InsecureSkipVerify disables TLS certificate verification on all
	// clients. Explicit opt-in for self-signed internal endpoints.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify,omitempty"`

	Wait Wait `yaml:"wait,omitempty"`
}

// Authentik holds the Authentik endpoint and admin API token.
type Authentik struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token,omitempty"`
}

// Zitadel holds the Zitadel instance domain and one of its credential forms:
// a PAT or a machine-user key file.
type Zitadel struct {
	Domain  string `yaml:"domain"`
	Token   string `yaml:"token,omitempty"`
	KeyPath string `yaml:"key_path,omitempty"`
}

// Wait configures readiness polling.
type Wait struct {
	Interval Duration `yaml:"interval,omitempty"`
	Timeout  Duration `yaml:"timeout,omitempty"`
}

// Duration is a time.Duration with YAML support for values like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// WaitInterval returns the configured polling interval or the default.
func (c *Config) WaitInterval() time.Duration {
	if c.Wait.Interval > 0 {
		return time.Duration(c.Wait.Interval)
	}
	return DefaultWaitInterval
}

// WaitTimeout returns the configured polling timeout or the default.
func (c *Config) WaitTimeout() time.Duration {
	if c.Wait.Timeout > 0 {
		return time.Duration(c.Wait.Timeout)
	}
	return DefaultWaitTimeout
}

// ApplyEnv overlays environment variables onto the configuration.
// Environment always wins over file values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("AUTHENTIK_URL"); v != "" {
		c.Authentik.URL = v
	}
	if v := os.Getenv("AUTHENTIK_TOKEN"); v != "" {
		c.Authentik.Token = v
	}
	if v := os.Getenv("ZITADEL_DOMAIN"); v != "" {
		c.Zitadel.Domain = v
	}
	if v := os.Getenv("ZITADEL_TOKEN"); v != "" {
		c.Zitadel.Token = v
	}
	if v := os.Getenv("ZITADEL_KEY_PATH"); v != "" {
		c.Zitadel.KeyPath = v
	}
}

// Validate checks the structural validity of whatever is set. Required
// fields are enforced per command via RequireAuthentik and RequireZitadel.
func (c *Config) Validate() error {
	if c.Authentik.URL != "" {
		parsed, err := url.Parse(c.Authentik.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("authentik.url %q is not a valid URL", c.Authentik.URL)
		}
	}
	if strings.Contains(c.Zitadel.Domain, "/") && !strings.Contains(c.Zitadel.Domain, "://") {
		return fmt.Errorf("zitadel.domain %q must be a bare domain", c.Zitadel.Domain)
	}
	return nil
}

// RequireAuthentik checks that the Authentik endpoint and token are set.
func (c *Config) RequireAuthentik() error {
	if c.Authentik.URL == "" {
		return fmt.Errorf("authentik.url is not configured (set it in %s or via AUTHENTIK_URL)", DefaultConfigFilename)
	}
	if c.Authentik.Token == "" {
		return fmt.Errorf("authentik.token is not configured (set it in %s or via AUTHENTIK_TOKEN)", DefaultConfigFilename)
	}
	return nil
}

// RequireZitadel checks that the Zitadel domain and a credential are set.
func (c *Config) RequireZitadel() error {
	if c.Zitadel.Domain == "" {
		return fmt.Errorf("zitadel.domain is not configured (set it in %s or via ZITADEL_DOMAIN)", DefaultConfigFilename)
	}
	if c.Zitadel.Token == "" && c.Zitadel.KeyPath == "" {
		return fmt.Errorf("zitadel needs a credential: set zitadel.token or zitadel.key_path")
	}
	return nil
}
