package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/idpctl/internal/ui"
)

// fileExists checks if a file exists. Replaced in tests.
var fileExists = func(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		ui.Warning("%s already exists and will be overwritten", outputPath)
	}

	cfg, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := saveConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	ui.Success("Configuration saved to %s", outputPath)
	if cfg.Authentik.URL != "" {
		ui.Detail("Authentik: %s", cfg.Authentik.URL)
	}
	if cfg.Zitadel.Domain != "" {
		ui.Detail("Zitadel:   %s", cfg.Zitadel.Domain)
	}
	ui.Detail("Next: idpctl authentik provider --name <app> --redirect-uri <uri>")

	return nil
}
