package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := Stdout
	Stdout = &buf
	t.Cleanup(func() { Stdout = orig })
	return &buf
}

func TestEmit(t *testing.T) {
	buf := capture(t)

	err := Emit(map[string]any{"client_id": "abc", "success": true})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "abc", got["client_id"])
	assert.Equal(t, true, got["success"])
}

func TestFail(t *testing.T) {
	buf := capture(t)

	err := Fail(Failure{
		Error:          "bootstrap needed but no token provided",
		ActionRequired: "visit https://auth.example.com/if/flow/initial-setup/",
	})
	require.Error(t, err)
	assert.Equal(t, "bootstrap needed but no token provided", err.Error())

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "bootstrap needed but no token provided", got["error"])
	assert.Contains(t, got["action_required"], "initial-setup")
}

func TestFailf_OmitsEmptyGuidance(t *testing.T) {
	buf := capture(t)

	err := Failf("no %s found", "signing key")
	require.EqualError(t, err, "no signing key found")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.NotContains(t, got, "action_required")
	assert.NotContains(t, got, "instructions")
}
