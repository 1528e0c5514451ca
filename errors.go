package podbean

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// APIError is a well-formed failure reported by the API itself.
type APIError struct {
	Code    int    // HTTP status code
	Message string // Server-provided message, or the raw body when unstructured
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// RateLimitError is returned when the server answers 429 Too Many Requests.
// It is distinct from local throttling, which never fails, only waits.
type RateLimitError struct {
	// RetryAfter is the server's Retry-After hint in seconds, or nil when
	// the header was absent or unparsable.
	RetryAfter *int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter != nil {
		return fmt.Sprintf("rate limit exceeded, retry after %d seconds", *e.RetryAfter)
	}
	return "rate limit exceeded"
}

// AuthError is an authentication failure: no credential held, a credential
// that cannot self-renew, or a rejected token request.
type AuthError struct {
	Reason string
	Err    error // underlying classified failure, if any
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication error: %s: %v", e.Reason, e.Err)
	}
	return "authentication error: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// TransportError is a network-layer fault: connection reset, timeout, DNS.
// The pipeline never retries these.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is returned when a 2xx response body does not match the
// expected shape. Missing or unrecognized fields are a failure, never a
// zeroed struct.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UnclassifiedError is the residual failure: an error response whose body
// could not even be read, or a response missing a required field.
type UnclassifiedError struct {
	Detail string
}

func (e *UnclassifiedError) Error() string {
	return e.Detail
}

// classifyResponse maps a terminal (non-2xx) response to exactly one typed
// error. It is total: every response yields a classified error, never a
// panic. The response body is consumed.
func classifyResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusTooManyRequests {
		// The Retry-After header takes precedence over body inspection.
		_, _ = io.Copy(io.Discard, resp.Body)
		var retryAfter *int
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil {
				retryAfter = &secs
			}
		}
		return &RateLimitError{RetryAfter: retryAfter}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UnclassifiedError{Detail: fmt.Sprintf("reading error response: %v", err)}
	}

	var apiBody struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &apiBody); err == nil && apiBody.Error != "" && apiBody.ErrorDescription != "" {
		return &APIError{
			Code:    resp.StatusCode,
			Message: apiBody.Error + ": " + apiBody.ErrorDescription,
		}
	}

	return &APIError{Code: resp.StatusCode, Message: string(body)}
}
