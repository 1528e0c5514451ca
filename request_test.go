package podbean

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestDispatchGetEncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/episodes" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("podcast_id") != "pod-1" || q.Get("limit") != "10" {
			t.Errorf("query = %v", q)
		}
		if body, _ := io.ReadAll(r.Body); len(body) != 0 {
			t.Errorf("GET carried a body: %q", body)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer held-token" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"count":0,"episodes":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	setToken(c, time.Hour, "")

	if _, err := c.ListEpisodes(context.Background(), ListEpisodesRequest{PodcastID: "pod-1", Limit: 10}); err != nil {
		t.Fatalf("ListEpisodes: %v", err)
	}
}

func TestDispatchNonGetEncodesForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/episodes" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", ct)
		}
		// ParseForm ignores DELETE bodies, so decode by hand.
		body, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(body))
		if err != nil {
			t.Fatalf("parsing form body: %v", err)
		}
		if got := form.Get("id"); got != "ep-9" {
			t.Errorf("form id = %q, want ep-9", got)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("non-GET parameters leaked into the query: %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	setToken(c, time.Hour, "")

	if err := c.DeleteEpisode(context.Background(), "ep-9"); err != nil {
		t.Fatalf("DeleteEpisode: %v", err)
	}
}

func TestDispatchDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	setToken(c, time.Hour, "")

	_, err := c.ListPodcasts(context.Background(), ListOptions{})
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %T (%v), want *DecodeError", err, err)
	}
}

func TestDispatchRateLimitedByServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	setToken(c, time.Hour, "")

	_, err := c.ListPodcasts(context.Background(), ListOptions{})
	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("error = %T (%v), want *RateLimitError", err, err)
	}
	if rle.RetryAfter == nil || *rle.RetryAfter != 30 {
		t.Errorf("RetryAfter = %v, want 30", rle.RetryAfter)
	}
}

func TestDispatchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(t, srv.URL)
	setToken(c, time.Hour, "")

	_, err := c.ListPodcasts(context.Background(), ListOptions{})
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %T (%v), want *TransportError", err, err)
	}
}

func TestDispatchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	setToken(c, time.Hour, "")

	_, err := c.ListPodcasts(context.Background(), ListOptions{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T (%v), want *APIError", err, err)
	}
	if apiErr.Code != 500 || apiErr.Message != "oops" {
		t.Errorf("classified as %d %q", apiErr.Code, apiErr.Message)
	}
}

func TestDispatchHonorsContextDuringThrottle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0,"podcasts":[]}`))
	}))
	defer srv.Close()

	// Capacity 1: the second call must wait a full window, far longer than
	// the context allows.
	c := newTestClient(t, srv.URL, WithRequestsPerMinute(1))
	setToken(c, time.Hour, "")

	ctx := context.Background()
	if _, err := c.ListPodcasts(ctx, ListOptions{}); err != nil {
		t.Fatalf("first call: %v", err)
	}

	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err := c.ListPodcasts(short, ListOptions{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want context.DeadlineExceeded", err)
	}
}
