// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic: they take plain arguments, resolve the
// configuration, talk to the identity providers and emit one JSON object on
// stdout. External constructors are factory variables so tests can inject
// fakes.
package handlers

import (
	"os"

	"go.uber.org/zap"

	"github.com/imamik/idpctl/internal/config"
	"github.com/imamik/idpctl/internal/logger"
	"github.com/imamik/idpctl/internal/oidc"
	"github.com/imamik/idpctl/internal/platform/apihttp"
	"github.com/imamik/idpctl/internal/platform/authentik"
	"github.com/imamik/idpctl/internal/platform/zitadel"
)

// Options carries the global flags into a handler call.
type Options struct {
	ConfigPath string
	Verbose    bool
	Insecure   bool
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig loads the configuration file.
	loadConfig = config.Load

	// findConfigFile locates the config file when no path is given.
	findConfigFile = config.FindConfigFile

	// newAuthentikClient creates an Authentik API client.
	newAuthentikClient = func(url, token string, log *zap.SugaredLogger, opts ...apihttp.Option) *authentik.Client {
		return authentik.New(url, token, log, opts...)
	}

	// newZitadelClient creates a Zitadel API client.
	newZitadelClient = func(domain, token string, log *zap.SugaredLogger, opts ...apihttp.Option) *zitadel.Client {
		return zitadel.New(domain, token, log, opts...)
	}

	// newZitadelBootstrap creates a Zitadel client for the login UI flow.
	newZitadelBootstrap = func(domain string, log *zap.SugaredLogger, opts ...apihttp.Option) *zitadel.Client {
		return zitadel.NewBootstrap(domain, log, opts...)
	}

	// loadZitadelKey reads a machine-user key file.
	loadZitadelKey = zitadel.LoadKey

	// discoverProvider fetches an OIDC discovery document.
	discoverProvider = oidc.DiscoverProvider

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile

	// runWizard runs the init wizard.
	runWizard = config.RunWizard

	// saveConfig writes a configuration file.
	saveConfig = config.Save
)

// setup resolves the configuration and builds the logger.
func setup(opts Options) (*config.Config, *zap.SugaredLogger, error) {
	path := opts.ConfigPath
	if path == "" {
		if found, err := findConfigFile(); err == nil {
			path = found
		} else {
			path = config.DefaultConfigFilename
		}
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	if opts.Insecure {
		cfg.InsecureSkipVerify = true
	}
	return cfg, logger.New(opts.Verbose), nil
}

// clientOptions translates config into API client options.
func clientOptions(cfg *config.Config) []apihttp.Option {
	var opts []apihttp.Option
	if cfg.InsecureSkipVerify {
		opts = append(opts, apihttp.WithInsecureTLS())
	}
	return opts
}
