// Package podbean is a client for the Podbean podcast hosting API. It
// handles the OAuth2 authorization-code flow, keeps the access token fresh,
// and rate-limits every authenticated call.
package podbean

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/wrale/podbean-go/internal/ratelimit"
	"github.com/wrale/podbean-go/tokenstore"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.podbean.com/v1"

	// DefaultRequestsPerMinute is the API's documented request budget.
	DefaultRequestsPerMinute = 60

	defaultTimeout = 30 * time.Second
)

// Client is a Podbean API client. It is safe for concurrent use: the held
// credential and the rate window are the only mutable state, each behind
// its own lock, and both are scoped to the client instance.
type Client struct {
	httpClient        *http.Client
	clientID          string
	clientSecret      string
	baseURL           string
	requestsPerMinute int
	limiter           *ratelimit.Limiter
	store             tokenstore.Store

	// mu guards tok. The refresh round-trip runs under mu, so concurrent
	// callers that observe an expired token trigger exactly one refresh
	// and all see its result.
	mu  sync.Mutex
	tok *token
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Trailing slashes are trimmed.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client used for all requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRequestsPerMinute overrides the local request budget per rolling
// minute.
func WithRequestsPerMinute(n int) Option {
	return func(c *Client) {
		c.requestsPerMinute = n
	}
}

// WithTokenStore enables credential persistence. Tokens are saved on every
// successful exchange or refresh and removed on Reset.
func WithTokenStore(store tokenstore.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// New creates a client for the given OAuth application credentials.
func New(clientID, clientSecret string, opts ...Option) (*Client, error) {
	if clientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("client secret is required")
	}

	c := &Client{
		httpClient:        &http.Client{Timeout: defaultTimeout},
		clientID:          clientID,
		clientSecret:      clientSecret,
		baseURL:           DefaultBaseURL,
		requestsPerMinute: DefaultRequestsPerMinute,
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, err := url.Parse(c.baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	limiter, err := ratelimit.New(c.requestsPerMinute)
	if err != nil {
		return nil, err
	}
	c.limiter = limiter

	return c, nil
}

// Authorize exchanges an authorization code for an access token. The
// redirect URI must match the one used in the authorization request.
func (c *Client) Authorize(ctx context.Context, code, redirectURI string) error {
	data := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {redirectURI},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestTokenLocked(ctx, data)
}

// RefreshToken exchanges the held refresh token for a new access token.
// This is normally done automatically when a call finds the credential
// expired. On failure the previous credential is left in place.
func (c *Client) RefreshToken(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

// refreshLocked issues the refresh grant. Callers must hold c.mu.
func (c *Client) refreshLocked(ctx context.Context) error {
	if c.tok == nil {
		return &AuthError{Reason: "not authenticated"}
	}
	if c.tok.refreshToken == "" {
		return &AuthError{Reason: "no refresh token available"}
	}

	data := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.tok.refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	return c.requestTokenLocked(ctx, data)
}

// requestTokenLocked posts to the OAuth token endpoint and replaces the
// held credential wholesale on success. Callers must hold c.mu. Token
// endpoint calls are auth plumbing and do not consume a rate-window
// admission.
func (c *Client) requestTokenLocked(ctx context.Context, data url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &AuthError{Reason: "token request rejected", Err: classifyResponse(resp)}
	}

	var tr TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return &AuthError{Reason: "undecodable token response", Err: &DecodeError{Err: err}}
	}
	if tr.AccessToken == "" || tr.TokenType == "" {
		return &AuthError{
			Reason: "undecodable token response",
			Err:    &DecodeError{Err: errors.New("token response missing access_token or token_type")},
		}
	}

	c.tok = newToken(&tr)

	if c.store != nil {
		if err := c.store.Save(ctx, c.tok.record()); err != nil {
			// The client is authenticated; only persistence failed.
			return fmt.Errorf("persisting token: %w", err)
		}
	}
	return nil
}

// LoadToken restores a previously persisted credential from the configured
// token store.
func (c *Client) LoadToken(ctx context.Context) error {
	if c.store == nil {
		return fmt.Errorf("no token store configured")
	}

	rec, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading token: %w", err)
	}
	if rec == nil {
		return &AuthError{Reason: "no stored token"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tok = restoredToken(rec)
	return nil
}

// Reset discards the held credential, returning the client to the
// unauthenticated state, and removes any persisted copy. This is the only
// path back to unauthenticated: a failed refresh leaves the stale
// credential in place for a later retry.
func (c *Client) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.tok = nil
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.Delete(ctx); err != nil {
			return fmt.Errorf("deleting stored token: %w", err)
		}
	}
	return nil
}

// Authenticated reports whether the client currently holds a credential.
// The credential may still be expired; expiry is handled per call.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tok != nil
}
