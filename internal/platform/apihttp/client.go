// Package apihttp provides a minimal JSON client for identity-provider
// admin APIs.
//
// Every call resolves to a uniform (status, body) pair: non-2xx responses
// still carry their parsed JSON body so callers can branch on structured
// error content, and transport failures surface as status 0 with an error
// payload instead of an opaque Go error.
package apihttp

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const requestTimeout = 30 * time.Second

// Client issues authenticated JSON requests against one base URL.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	// sessionCookie holds the first Set-Cookie pair observed, reused for
	// subsequent calls when no bearer token is configured.
	sessionCookie string
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token used for authentication.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithInsecureTLS disables certificate verification. This is an explicit
// opt-in for internal endpoints with self-signed certificates, never a
// default.
func WithInsecureTLS() Option {
	return func(c *Client) {
		transport := &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- explicit operator opt-in
		}
		c.httpClient.Transport = transport
	}
}

// WithCookieJar installs a cookie jar so multi-step form logins keep their
// session across redirects.
func WithCookieJar() Option {
	return func(c *Client) {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return
		}
		c.httpClient.Jar = jar
	}
}

// WithFollowRedirects restores redirect following for clients that drive
// browser-style login flows instead of probing for 302s.
func WithFollowRedirects() Option {
	return func(c *Client) {
		c.httpClient.CheckRedirect = nil
	}
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
			// Readiness probes need to observe 302 responses, so redirects
			// are not followed.
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response is the uniform result of an API call.
type Response struct {
	// Status is the HTTP status code, or 0 on transport failure.
	Status int
	// Body is the parsed JSON body. Non-JSON bodies and transport errors are
	// wrapped as {"error": "..."} so the shape is always an object or array.
	Body json.RawMessage
}

// OK reports whether the call reached the server and returned a 2xx or 3xx
// status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 400
}

// Conflict reports whether the server answered 409, i.e. the resource
// already exists.
func (r *Response) Conflict() bool {
	return r.Status == http.StatusConflict
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("empty response body (status %d)", r.Status)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body (status %d): %w", r.Status, err)
	}
	return nil
}

// Err converts a failed response into an error. Successful responses return
// nil.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return &StatusError{Status: r.Status, Body: r.Body}
}

// Do performs a JSON API call. The returned response is never nil.
func (c *Client) Do(ctx context.Context, method, path string, payload any) *Response {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return transportFailure(fmt.Errorf("failed to encode request body: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return transportFailure(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	c.authorize(req)

	return c.send(req)
}

// PostForm performs a form-encoded POST (token endpoints, login forms).
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) *Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return transportFailure(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	return c.send(req)
}

func (c *Client) authorize(req *http.Request) {
	switch {
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	case c.sessionCookie != "":
		req.Header.Set("Cookie", c.sessionCookie)
	}
}

func (c *Client) send(req *http.Request) *Response {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportFailure(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if cookie := resp.Header.Get("Set-Cookie"); cookie != "" && c.sessionCookie == "" {
		c.sessionCookie = strings.SplitN(cookie, ";", 2)[0]
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(err)
	}

	return &Response{Status: resp.StatusCode, Body: normalizeBody(data)}
}

// normalizeBody keeps valid JSON as-is and wraps everything else so callers
// always see a decodable object.
func normalizeBody(data []byte) json.RawMessage {
	if json.Valid(data) && len(bytes.TrimSpace(data)) > 0 {
		return data
	}
	wrapped, _ := json.Marshal(map[string]string{"error": string(data)})
	return wrapped
}

func transportFailure(err error) *Response {
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	return &Response{Status: 0, Body: body}
}
