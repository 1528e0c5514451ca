package podbean

import (
	"context"
	"net/http"
)

// ListMedia lists the media files uploaded by the authenticated account.
func (c *Client) ListMedia(ctx context.Context, opts ListOptions) (*MediaList, error) {
	var out MediaList
	if err := c.do(ctx, http.MethodGet, "/medias", opts.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
