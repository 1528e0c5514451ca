package podbean

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ensureToken returns a credential that is valid right now, refreshing a
// stale one first. Exactly one refresh is issued for any burst of
// concurrent callers: the round-trip happens under c.mu, and later callers
// re-observe the replaced credential. A failed refresh leaves the previous
// credential untouched.
func (c *Client) ensureToken(ctx context.Context) (*token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tok == nil {
		return nil, &AuthError{Reason: "not authenticated"}
	}
	if c.tok.expired() {
		if err := c.refreshLocked(ctx); err != nil {
			return nil, err
		}
	}
	return c.tok, nil
}

// do dispatches one authenticated API call: ensure a fresh credential,
// take a rate-window admission, send, and either decode the 2xx body into
// out or classify the failure. Passing a nil out discards the body. Exactly
// one outbound call is made per invocation, plus at most one token refresh
// on the expiry path. No failure is retried here; retry policy belongs to
// the caller.
func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, out any) error {
	tok, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if method != http.MethodGet && len(params) > 0 {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if method == http.MethodGet && len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Authorization", tok.header())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
