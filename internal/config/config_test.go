package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
authentik:
  url: https://auth.example.com
  token: ak-token
zitadel:
  domain: zitadel.example.com
  key_path: /etc/idpctl/api-key.json
wait:
  interval: 2s
  timeout: 1m
`

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "https://auth.example.com", cfg.Authentik.URL)
	assert.Equal(t, "zitadel.example.com", cfg.Zitadel.Domain)
	assert.Equal(t, 2*time.Second, cfg.WaitInterval())
	assert.Equal(t, time.Minute, cfg.WaitTimeout())
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("AUTHENTIK_URL", "https://auth.env.example.com")
	t.Setenv("AUTHENTIK_TOKEN", "env-token")

	cfg, err := Load(filepath.Join(t.TempDir(), DefaultConfigFilename))
	require.NoError(t, err)
	assert.Equal(t, "https://auth.env.example.com", cfg.Authentik.URL)
	require.NoError(t, cfg.RequireAuthentik())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	t.Setenv("ZITADEL_TOKEN", "pat-from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pat-from-env", cfg.Zitadel.Token)
	assert.Equal(t, "zitadel.example.com", cfg.Zitadel.Domain, "file values survive where env is unset")
}

func TestLoadFromBytes_InvalidURL(t *testing.T) {
	_, err := LoadFromBytes([]byte("authentik:\n  url: not a url\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid URL")
}

func TestLoadFromBytes_InvalidDuration(t *testing.T) {
	_, err := LoadFromBytes([]byte("wait:\n  interval: fast\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestWaitDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultWaitInterval, cfg.WaitInterval())
	assert.Equal(t, DefaultWaitTimeout, cfg.WaitTimeout())
}

func TestRequireZitadel(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.RequireZitadel())

	cfg.Zitadel.Domain = "zitadel.example.com"
	err := cfg.RequireZitadel()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credential")

	cfg.Zitadel.Token = "pat"
	require.NoError(t, cfg.RequireZitadel())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFilename)

	cfg := &Config{}
	cfg.Authentik.URL = "https://auth.example.com"
	cfg.Authentik.Token = "secret"
	cfg.Wait.Interval = Duration(10 * time.Second)
	require.NoError(t, Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "config carries tokens")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Authentik.URL, loaded.Authentik.URL)
	assert.Equal(t, 10*time.Second, loaded.WaitInterval())
}

func TestFindConfigFile_WalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultConfigFilename), []byte(sampleConfig), 0o600))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	t.Chdir(nested)

	path, err := FindConfigFile()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFilename, filepath.Base(path))
	_, err = os.Stat(path)
	require.NoError(t, err)
}
