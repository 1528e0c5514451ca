package podbean

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListOptions paginates a listing. Zero-valued fields are omitted.
type ListOptions struct {
	Offset int
	Limit  int
}

func (o ListOptions) values() url.Values {
	params := url.Values{}
	if o.Offset > 0 {
		params.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	return params
}

// ListPodcasts lists the podcasts owned by the authenticated account.
func (c *Client) ListPodcasts(ctx context.Context, opts ListOptions) (*PodcastList, error) {
	var out PodcastList
	if err := c.do(ctx, http.MethodGet, "/podcasts", opts.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
