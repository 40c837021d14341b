package gunbroker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Sentinels that can be checked with errors.Is.
var (
	// ErrInvalidPath reports a request path that does not start with "/".
	ErrInvalidPath = errors.New("path must start with '/'")
	// ErrUnauthorized matches a 401 response.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden matches a 403 response.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound matches a 404 response.
	ErrNotFound = errors.New("not found")
	// ErrServer matches any 5xx response.
	ErrServer = errors.New("server error")
)

// ConfigError is returned when an API instance cannot be constructed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gunbroker: invalid request %q: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RequestError is a non-2xx response from the API.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *RequestError) Error() string {
	snippet := bodySnippet(e.Body)
	if snippet == "" {
		return fmt.Sprintf("gunbroker: %s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("gunbroker: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, snippet)
}

// Is implements errors.Is for the status sentinels.
func (e *RequestError) Is(target error) bool {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return target == ErrUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return target == ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return target == ErrNotFound
	case e.StatusCode >= 500 && e.StatusCode <= 599:
		return target == ErrServer
	}
	return false
}

// TransportError wraps a failure to complete the HTTP round trip:
// connection errors, TLS failures and timeouts.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gunbroker: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline or client timeout.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// DecodeError is a 2xx response whose body is not valid JSON.
type DecodeError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gunbroker: decode response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func bodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
