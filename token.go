package podbean

import (
	"time"

	"github.com/wrale/podbean-go/tokenstore"
)

// expiryMargin is subtracted from a token's declared lifetime so the client
// refreshes before the server-side expiry, absorbing clock skew and
// in-flight latency.
const expiryMargin = 300 * time.Second

// token is an immutable credential snapshot. A refresh replaces the whole
// token; fields are never mutated in place, so concurrent readers only ever
// see a complete credential.
type token struct {
	accessToken  string
	tokenType    string
	lifetime     time.Duration
	refreshToken string
	scope        string
	createdAt    time.Time // monotonic reading captured at construction
}

// newToken builds a token from an OAuth token response, capturing "now" as
// the creation instant.
func newToken(resp *TokenResponse) *token {
	return &token{
		accessToken:  resp.AccessToken,
		tokenType:    resp.TokenType,
		lifetime:     time.Duration(resp.ExpiresIn) * time.Second,
		refreshToken: resp.RefreshToken,
		scope:        resp.Scope,
		createdAt:    time.Now(),
	}
}

// restoredToken rebuilds a token from a persisted record. Monotonic
// readings do not survive a process, so the remaining lifetime is
// recomputed from the record's absolute expiry.
func restoredToken(rec *tokenstore.Record) *token {
	return &token{
		accessToken:  rec.AccessToken,
		tokenType:    rec.TokenType,
		lifetime:     time.Until(rec.ExpiresAt),
		refreshToken: rec.RefreshToken,
		scope:        rec.Scope,
		createdAt:    time.Now(),
	}
}

// record converts the token to its persistable form.
func (t *token) record() *tokenstore.Record {
	return &tokenstore.Record{
		AccessToken:  t.accessToken,
		TokenType:    t.tokenType,
		RefreshToken: t.refreshToken,
		Scope:        t.scope,
		ExpiresAt:    t.createdAt.Add(t.lifetime),
	}
}

// expired reports whether the token should be considered stale. A token
// with less than expiryMargin of validity left is already expired.
func (t *token) expired() bool {
	return time.Since(t.createdAt)+expiryMargin > t.lifetime
}

// header returns the value for the Authorization header.
func (t *token) header() string {
	return t.tokenType + " " + t.accessToken
}
