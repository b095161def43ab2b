package handlers

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imamik/idpctl/internal/config"
	"github.com/imamik/idpctl/internal/output"
)

// injectConfig replaces the config loading factories for one test.
func injectConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	origLoad := loadConfig
	origFind := findConfigFile
	t.Cleanup(func() {
		loadConfig = origLoad
		findConfigFile = origFind
	})
	findConfigFile = func() (string, error) { return config.DefaultConfigFilename, nil }
	loadConfig = func(string) (*config.Config, error) { return cfg, nil }
}

// captureStdout redirects the JSON output sink for one test and returns the
// buffer it lands in.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := output.Stdout
	t.Cleanup(func() { output.Stdout = orig })
	output.Stdout = &buf
	return &buf
}

// decodeResult unmarshals the single JSON object a handler emitted.
func decodeResult(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result), "stdout must hold one JSON object, got: %s", buf.String())
	return result
}

// fastWait returns wait settings suited for mock servers.
func fastWait() config.Wait {
	return config.Wait{
		Interval: config.Duration(5 * time.Millisecond),
		Timeout:  config.Duration(time.Second),
	}
}
