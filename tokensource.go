package podbean

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenSource exposes the client's credential as an oauth2.TokenSource so
// it can feed libraries built on golang.org/x/oauth2. Each Token call goes
// through the same ensure-fresh path as a dispatched request, so the
// returned token is never inside the expiry safety margin.
func (c *Client) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, client: c}
}

type tokenSource struct {
	ctx    context.Context
	client *Client
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.client.ensureToken(s.ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken:  tok.accessToken,
		TokenType:    tok.tokenType,
		RefreshToken: tok.refreshToken,
		Expiry:       tok.createdAt.Add(tok.lifetime),
	}, nil
}
