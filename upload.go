package podbean

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// uploadAuthorization is the response from the upload authorization
// endpoint: a short-lived presigned storage URL plus the key the uploaded
// file will be known by.
type uploadAuthorization struct {
	PresignedURL string `json:"presigned_url"`
	FileKey      string `json:"file_key"`
}

// UploadMedia uploads a local audio file and returns the media key to use
// when publishing an episode.
//
// The upload is two-phase: an authorize call against the API yields a
// presigned storage URL, then the file bytes go straight to object storage
// with a raw PUT, keeping the API server off the transfer path. The PUT
// carries no bearer header; the presigned URL is its own authorization.
func (c *Client) UploadMedia(ctx context.Context, path string, format MediaFormat) (string, error) {
	if !format.valid() {
		return "", fmt.Errorf("unsupported media format")
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	params := url.Values{}
	params.Set("filename", filepath.Base(path))
	params.Set("content_type", format.ContentType())
	params.Set("filesize", strconv.FormatInt(info.Size(), 10))

	var auth uploadAuthorization
	if err := c.do(ctx, http.MethodGet, "/files/uploadAuthorize", params, &auth); err != nil {
		return "", err
	}
	if auth.PresignedURL == "" {
		return "", &UnclassifiedError{Detail: "missing presigned_url in response"}
	}
	if auth.FileKey == "" {
		return "", &UnclassifiedError{Detail: "missing file_key in response"}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, auth.PresignedURL, f)
	if err != nil {
		return "", fmt.Errorf("creating upload request: %w", err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", format.ContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", classifyResponse(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return auth.FileKey, nil
}
