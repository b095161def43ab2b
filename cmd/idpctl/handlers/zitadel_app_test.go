package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/idpctl/internal/config"
)

// zitadelMock serves the endpoints the app flow touches.
func zitadelMock(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	respond := func(w http.ResponseWriter, status int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}

	mux.HandleFunc("/management/v1/projects/_search", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]any{"result": []any{}})
	})
	mux.HandleFunc("/management/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer pat-token", r.Header.Get("Authorization"))
		respond(w, http.StatusCreated, map[string]any{"id": "proj-1"})
	})
	mux.HandleFunc("/management/v1/projects/proj-1/apps/_search", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]any{"result": []any{}})
	})
	mux.HandleFunc("/management/v1/projects/proj-1/apps/oidc", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusCreated, map[string]any{
			"appId": "app-1", "clientId": "cid", "clientSecret": "sec",
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestZitadelApp_EndToEnd(t *testing.T) {
	server := zitadelMock(t)
	injectConfig(t, &config.Config{
		Zitadel: config.Zitadel{Domain: server.URL, Token: "pat-token"},
	})
	buf := captureStdout(t)

	err := ZitadelApp(context.Background(), Options{}, AppRequest{
		Name:        "Nextcloud",
		RedirectURI: "https://cloud.example.com/apps/user_oidc/code",
	})
	require.NoError(t, err)

	result := decodeResult(t, buf)
	assert.Equal(t, "created", result["status"])
	assert.Equal(t, "proj-1", result["project_id"])
	assert.Equal(t, "app-1", result["app_id"])
	assert.Equal(t, "cid", result["client_id"])
	assert.Equal(t, "sec", result["client_secret"])
}

func TestZitadelApp_MissingCredential(t *testing.T) {
	injectConfig(t, &config.Config{
		Zitadel: config.Zitadel{Domain: "zitadel.example.com"},
	})
	buf := captureStdout(t)

	err := ZitadelApp(context.Background(), Options{}, AppRequest{
		Name:        "Nextcloud",
		RedirectURI: "https://cloud.example.com/apps/user_oidc/code",
	})
	require.Error(t, err)

	result := decodeResult(t, buf)
	assert.Contains(t, result["error"], "credential")
}

func TestZitadelSetup_ServiceUserMissing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/management/v1/projects/_search", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":[{"id":"proj-1","name":"SSO Applications"}]}`))
	})
	mux.HandleFunc("/management/v1/users/_search", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":[]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	injectConfig(t, &config.Config{
		Zitadel: config.Zitadel{Domain: server.URL, Token: "pat-token"},
	})
	buf := captureStdout(t)

	err := ZitadelSetup(context.Background(), Options{}, "SSO Applications", "api-automation")
	require.Error(t, err)

	result := decodeResult(t, buf)
	assert.Contains(t, result["error"], "api-automation")
	assert.NotEmpty(t, result["instructions"])
}

func TestZitadelBootstrap_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ui/login/loginname", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/ui/login/password", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/management/v1/users/_search", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		require.NoError(t, err, "API calls must reuse the login session")
		require.Equal(t, "s1", cookie.Value)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":[]}`))
	})
	mux.HandleFunc("/management/v1/users/machine", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"userId":"u1"}`))
	})
	mux.HandleFunc("/management/v1/users/u1/pats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"pat_secret"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	injectConfig(t, &config.Config{
		Zitadel: config.Zitadel{Domain: server.URL},
	})
	buf := captureStdout(t)

	err := ZitadelBootstrap(context.Background(), Options{}, BootstrapRequest{
		AdminUser:     "admin@example.com",
		AdminPassword: "hunter2",
	})
	require.NoError(t, err)

	result := decodeResult(t, buf)
	assert.Equal(t, "u1", result["user_id"])
	assert.Equal(t, "pat_secret", result["token"])
}

func TestZitadelMachineUser_WritesKeyFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "password", r.Form.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at_admin"}`))
	})
	mux.HandleFunc("/management/v1/users/_search", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":[]}`))
	})
	mux.HandleFunc("/management/v1/users/machine", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"userId":"u1"}`))
	})
	mux.HandleFunc("/management/v1/users/u1/keys", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"keyId":"k1","keyDetails":"eyJrZXlJZCI6ImsxIn0="}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	var writtenPath string
	var writtenData []byte
	origWrite := writeFile
	t.Cleanup(func() { writeFile = origWrite })
	writeFile = func(path string, data []byte, _ os.FileMode) error {
		writtenPath = path
		writtenData = data
		return nil
	}

	injectConfig(t, &config.Config{
		Zitadel: config.Zitadel{Domain: server.URL},
	})
	buf := captureStdout(t)

	err := ZitadelMachineUser(context.Background(), Options{}, MachineUserRequest{
		AdminUser:     "admin@example.com",
		AdminPassword: "hunter2",
		KeyOutput:     "/tmp/api-key.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/api-key.json", writtenPath)
	assert.JSONEq(t, `{"keyId":"k1"}`, string(writtenData))

	result := decodeResult(t, buf)
	assert.Equal(t, "u1", result["user_id"])
	assert.Equal(t, "/tmp/api-key.json", result["key_path"])
}
