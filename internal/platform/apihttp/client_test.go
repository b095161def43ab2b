package apihttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer mocks an identity-provider admin API.
type testServer struct {
	server *httptest.Server
	mux    *http.ServeMux
}

func newTestServer() *testServer {
	mux := http.NewServeMux()
	return &testServer{
		server: httptest.NewServer(mux),
		mux:    mux,
	}
}

func (ts *testServer) close() {
	ts.server.Close()
}

func (ts *testServer) handleFunc(pattern string, handler http.HandlerFunc) {
	ts.mux.HandleFunc(pattern, handler)
}

func jsonResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_Do_BearerToken(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/api/v3/flows/instances/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		jsonResponse(w, http.StatusOK, map[string]any{"results": []any{}})
	})

	client := NewClient(ts.server.URL, WithToken("test-token"))
	resp := client.Do(context.Background(), http.MethodGet, "/api/v3/flows/instances/", nil)

	require.True(t, resp.OK())
	assert.Equal(t, http.StatusOK, resp.Status)

	var body struct {
		Results []any `json:"results"`
	}
	require.NoError(t, resp.Decode(&body))
	assert.Empty(t, body.Results)
}

func TestClient_Do_StructuredErrorBody(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/api/v3/providers/oauth2/", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusBadRequest, map[string]any{
			"authorization_flow": []string{"This field is required."},
		})
	})

	client := NewClient(ts.server.URL)
	resp := client.Do(context.Background(), http.MethodPost, "/api/v3/providers/oauth2/", map[string]string{})

	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	var body map[string][]string
	require.NoError(t, resp.Decode(&body))
	assert.Equal(t, []string{"This field is required."}, body["authorization_flow"])
}

func TestClient_Do_UnstructuredErrorBodyIsWrapped(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	client := NewClient(ts.server.URL)
	resp := client.Do(context.Background(), http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusBadGateway, resp.Status)

	var body map[string]string
	require.NoError(t, resp.Decode(&body))
	assert.Contains(t, body["error"], "bad gateway")
}

func TestClient_Do_TransportFailure(t *testing.T) {
	// Port 1 on localhost: connection refused.
	client := NewClient("http://127.0.0.1:1")
	resp := client.Do(context.Background(), http.MethodGet, "/", nil)

	assert.Equal(t, 0, resp.Status)
	assert.False(t, resp.OK())
	assert.True(t, IsTransportFailure(resp.Err()))

	var body map[string]string
	require.NoError(t, resp.Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestClient_SessionCookieCapture(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/login", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Set-Cookie", "sessionid=abc123; Path=/; HttpOnly")
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	ts.handleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sessionid=abc123", r.Header.Get("Cookie"))
		jsonResponse(w, http.StatusOK, map[string]string{"user": "admin"})
	})

	client := NewClient(ts.server.URL)
	require.True(t, client.Do(context.Background(), http.MethodPost, "/login", nil).OK())
	require.True(t, client.Do(context.Background(), http.MethodGet, "/whoami", nil).OK())
}

func TestClient_PostForm(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", r.PostFormValue("grant_type"))
		jsonResponse(w, http.StatusOK, map[string]string{"access_token": "at-123"})
	})

	client := NewClient(ts.server.URL)
	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", "xxx")

	resp := client.PostForm(context.Background(), "/oauth/v2/token", form)
	require.True(t, resp.OK())

	var body map[string]string
	require.NoError(t, resp.Decode(&body))
	assert.Equal(t, "at-123", body["access_token"])
}

func TestClient_RedirectsNotFollowed(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/if/flow/default-authentication-flow/", http.StatusFound)
	})

	client := NewClient(ts.server.URL)
	resp := client.Do(context.Background(), http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.True(t, resp.OK())
}

func TestResponse_Err(t *testing.T) {
	ok := &Response{Status: http.StatusCreated}
	assert.NoError(t, ok.Err())

	conflict := &Response{Status: http.StatusConflict, Body: []byte(`{"message":"exists"}`)}
	err := conflict.Err()
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "409")
}

func TestWaitReady(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	var calls int
	ts.handleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	client := NewClient(ts.server.URL)
	ok := client.WaitReady(context.Background(), "/", 5*time.Millisecond, time.Second)
	assert.True(t, ok)
	assert.Equal(t, 3, calls)
}

func TestWaitReady_Timeout(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client := NewClient(ts.server.URL)
	ok := client.WaitReady(context.Background(), "/", 5*time.Millisecond, 30*time.Millisecond)
	assert.False(t, ok)
}
