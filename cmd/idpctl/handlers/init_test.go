package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/idpctl/internal/config"
)

// saveAndRestoreInitFactories saves and restores init factory functions.
func saveAndRestoreInitFactories(t *testing.T) {
	origFileExists := fileExists
	origRunWizard := runWizard
	origSaveConfig := saveConfig

	t.Cleanup(func() {
		fileExists = origFileExists
		runWizard = origRunWizard
		saveConfig = origSaveConfig
	})
}

func TestInit_WritesConfig(t *testing.T) {
	saveAndRestoreInitFactories(t)

	fileExists = func(string) bool { return false }
	runWizard = func(context.Context) (*config.Config, error) {
		return &config.Config{
			Authentik: config.Authentik{URL: "https://auth.example.com", Token: "tok"},
		}, nil
	}

	var savedPath string
	var savedCfg *config.Config
	saveConfig = func(cfg *config.Config, path string) error {
		savedCfg = cfg
		savedPath = path
		return nil
	}

	require.NoError(t, Init(context.Background(), "idpctl.yaml"))
	assert.Equal(t, "idpctl.yaml", savedPath)
	require.NotNil(t, savedCfg)
	assert.Equal(t, "https://auth.example.com", savedCfg.Authentik.URL)
}

func TestInit_WizardCanceled(t *testing.T) {
	saveAndRestoreInitFactories(t)

	fileExists = func(string) bool { return false }
	runWizard = func(context.Context) (*config.Config, error) {
		return nil, errors.New("user aborted")
	}
	saveConfig = func(*config.Config, string) error {
		t.Error("canceled wizard must not write a config")
		return nil
	}

	err := Init(context.Background(), "idpctl.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}

func TestInit_SaveFailure(t *testing.T) {
	saveAndRestoreInitFactories(t)

	fileExists = func(string) bool { return true }
	runWizard = func(context.Context) (*config.Config, error) {
		return &config.Config{}, nil
	}
	saveConfig = func(*config.Config, string) error {
		return errors.New("disk full")
	}

	err := Init(context.Background(), "idpctl.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config")
}
