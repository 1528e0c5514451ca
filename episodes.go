package podbean

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// PublishEpisodeRequest carries the fields for publishing a new episode.
// MediaKey is the key returned by UploadMedia. PublishTimestamp is required
// when Status is EpisodeStatusFuture.
type PublishEpisodeRequest struct {
	PodcastID        string
	Title            string
	Content          string
	MediaKey         string
	Status           EpisodeStatus
	Type             EpisodeType // optional; zero value omits the field
	PublishTimestamp int64       // optional; unix seconds
}

// PublishEpisode creates a new episode and returns its ID.
func (c *Client) PublishEpisode(ctx context.Context, req PublishEpisodeRequest) (string, error) {
	if !req.Status.valid() {
		return "", fmt.Errorf("episode status is required")
	}

	params := url.Values{}
	params.Set("podcast_id", req.PodcastID)
	params.Set("title", req.Title)
	params.Set("content", req.Content)
	params.Set("media_key", req.MediaKey)
	params.Set("status", req.Status.String())
	if req.Type.valid() {
		params.Set("type", req.Type.String())
	}
	if req.PublishTimestamp != 0 {
		params.Set("publish_timestamp", strconv.FormatInt(req.PublishTimestamp, 10))
	}

	var out struct {
		Episode struct {
			ID string `json:"id"`
		} `json:"episode"`
	}
	if err := c.do(ctx, http.MethodPost, "/episodes", params, &out); err != nil {
		return "", err
	}
	if out.Episode.ID == "" {
		return "", &UnclassifiedError{Detail: "missing episode ID in response"}
	}
	return out.Episode.ID, nil
}

// GetEpisode retrieves a single episode by ID.
func (c *Client) GetEpisode(ctx context.Context, episodeID string) (*Episode, error) {
	params := url.Values{}
	params.Set("id", episodeID)

	var out struct {
		Episode Episode `json:"episode"`
	}
	if err := c.do(ctx, http.MethodGet, "/episodes/one", params, &out); err != nil {
		return nil, err
	}
	return &out.Episode, nil
}

// ListEpisodesRequest filters an episode listing. Zero-valued fields are
// omitted from the request.
type ListEpisodesRequest struct {
	PodcastID string
	Offset    int
	Limit     int
}

// ListEpisodes lists episodes, optionally scoped to one podcast.
func (c *Client) ListEpisodes(ctx context.Context, req ListEpisodesRequest) (*EpisodeList, error) {
	params := url.Values{}
	if req.PodcastID != "" {
		params.Set("podcast_id", req.PodcastID)
	}
	if req.Offset > 0 {
		params.Set("offset", strconv.Itoa(req.Offset))
	}
	if req.Limit > 0 {
		params.Set("limit", strconv.Itoa(req.Limit))
	}

	var out EpisodeList
	if err := c.do(ctx, http.MethodGet, "/episodes", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEpisodeRequest carries the fields to change on an episode.
// Zero-valued fields keep their current value.
type UpdateEpisodeRequest struct {
	Title            string
	Content          string
	Status           EpisodeStatus
	PublishTimestamp int64
}

// UpdateEpisode updates an existing episode.
func (c *Client) UpdateEpisode(ctx context.Context, episodeID string, req UpdateEpisodeRequest) error {
	params := url.Values{}
	params.Set("id", episodeID)
	if req.Title != "" {
		params.Set("title", req.Title)
	}
	if req.Content != "" {
		params.Set("content", req.Content)
	}
	if req.Status.valid() {
		params.Set("status", req.Status.String())
	}
	if req.PublishTimestamp != 0 {
		params.Set("publish_timestamp", strconv.FormatInt(req.PublishTimestamp, 10))
	}

	return c.do(ctx, http.MethodPut, "/episodes", params, nil)
}

// DeleteEpisode deletes an episode by ID.
func (c *Client) DeleteEpisode(ctx context.Context, episodeID string) error {
	params := url.Values{}
	params.Set("id", episodeID)

	return c.do(ctx, http.MethodDelete, "/episodes", params, nil)
}
