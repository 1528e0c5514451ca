package podbean

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func newResponse(status int, body string, headers map[string]string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
	for k, v := range headers {
		resp.Header.Set(k, v)
	}
	return resp
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset mid-read")
}

func TestClassifyResponse(t *testing.T) {
	tests := []struct {
		name  string
		resp  *http.Response
		check func(*testing.T, error)
	}{
		{
			name: "429 with Retry-After takes precedence over body",
			resp: newResponse(429, `{"error":"slow_down","error_description":"too fast"}`, map[string]string{"Retry-After": "17"}),
			check: func(t *testing.T, err error) {
				var rle *RateLimitError
				if !errors.As(err, &rle) {
					t.Fatalf("error = %T, want *RateLimitError", err)
				}
				if rle.RetryAfter == nil || *rle.RetryAfter != 17 {
					t.Errorf("RetryAfter = %v, want 17", rle.RetryAfter)
				}
			},
		},
		{
			name: "429 without Retry-After",
			resp: newResponse(429, "", nil),
			check: func(t *testing.T, err error) {
				var rle *RateLimitError
				if !errors.As(err, &rle) {
					t.Fatalf("error = %T, want *RateLimitError", err)
				}
				if rle.RetryAfter != nil {
					t.Errorf("RetryAfter = %d, want nil", *rle.RetryAfter)
				}
			},
		},
		{
			name: "429 with unparsable Retry-After",
			resp: newResponse(429, "", map[string]string{"Retry-After": "soon"}),
			check: func(t *testing.T, err error) {
				var rle *RateLimitError
				if !errors.As(err, &rle) {
					t.Fatalf("error = %T, want *RateLimitError", err)
				}
				if rle.RetryAfter != nil {
					t.Errorf("RetryAfter = %d, want nil", *rle.RetryAfter)
				}
			},
		},
		{
			name: "structured API error body",
			resp: newResponse(400, `{"error":"invalid_request","error_description":"bad redirect"}`, nil),
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %T, want *APIError", err)
				}
				if apiErr.Code != 400 {
					t.Errorf("Code = %d, want 400", apiErr.Code)
				}
				if apiErr.Message != "invalid_request: bad redirect" {
					t.Errorf("Message = %q, want %q", apiErr.Message, "invalid_request: bad redirect")
				}
			},
		},
		{
			name: "unstructured body becomes raw message",
			resp: newResponse(500, "oops", nil),
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %T, want *APIError", err)
				}
				if apiErr.Code != 500 || apiErr.Message != "oops" {
					t.Errorf("got %d %q, want 500 %q", apiErr.Code, apiErr.Message, "oops")
				}
			},
		},
		{
			name: "JSON body missing error_description falls back to raw",
			resp: newResponse(404, `{"error":"not_found"}`, nil),
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %T, want *APIError", err)
				}
				if apiErr.Message != `{"error":"not_found"}` {
					t.Errorf("Message = %q, want raw body", apiErr.Message)
				}
			},
		},
		{
			name: "unreadable body",
			resp: &http.Response{
				StatusCode: 502,
				Header:     http.Header{},
				Body:       io.NopCloser(failingReader{}),
			},
			check: func(t *testing.T, err error) {
				var ue *UnclassifiedError
				if !errors.As(err, &ue) {
					t.Fatalf("error = %T, want *UnclassifiedError", err)
				}
				if !strings.Contains(ue.Detail, "connection reset mid-read") {
					t.Errorf("Detail = %q, want read failure description", ue.Detail)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyResponse(tt.resp)
			if err == nil {
				t.Fatal("classifyResponse returned nil for a terminal response")
			}
			tt.check(t, err)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	seventeen := 17
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "api error", err: &APIError{Code: 400, Message: "bad"}, want: "API error 400: bad"},
		{name: "rate limited with hint", err: &RateLimitError{RetryAfter: &seventeen}, want: "rate limit exceeded, retry after 17 seconds"},
		{name: "rate limited without hint", err: &RateLimitError{}, want: "rate limit exceeded"},
		{name: "auth error", err: &AuthError{Reason: "not authenticated"}, want: "authentication error: not authenticated"},
		{name: "unclassified", err: &UnclassifiedError{Detail: "missing file_key in response"}, want: "missing file_key in response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("boom")

	if got := errors.Unwrap(&TransportError{Err: cause}); got != cause {
		t.Errorf("TransportError.Unwrap() = %v, want cause", got)
	}
	if got := errors.Unwrap(&DecodeError{Err: cause}); got != cause {
		t.Errorf("DecodeError.Unwrap() = %v, want cause", got)
	}

	authErr := &AuthError{Reason: "token request rejected", Err: &APIError{Code: 400, Message: "bad"}}
	var apiErr *APIError
	if !errors.As(authErr, &apiErr) {
		t.Error("AuthError does not expose its classified cause via errors.As")
	}
}
