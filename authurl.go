package podbean

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// AuthorizationURL builds the URL a user visits to authorize the
// application. It is a pure function of its inputs: identical arguments
// produce identical URLs. Pass a non-empty state for CSRF protection; the
// authorization server echoes it back on the redirect.
func (c *Client) AuthorizationURL(redirectURI, state string) (string, error) {
	u, err := url.Parse(c.baseURL + "/dialog/oauth")
	if err != nil {
		return "", fmt.Errorf("parsing authorization URL: %w", err)
	}

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", redirectURI)
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// State returns a random value suitable for the state parameter of
// AuthorizationURL.
func State() string {
	return uuid.NewString()
}
