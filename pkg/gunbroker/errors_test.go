package gunbroker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRequestErrorSentinels(t *testing.T) {
	cases := map[int]error{
		401: ErrUnauthorized,
		403: ErrForbidden,
		404: ErrNotFound,
		500: ErrServer,
		503: ErrServer,
	}
	for status, want := range cases {
		err := fmt.Errorf("wrapped: %w", &RequestError{Method: "GET", URL: "u", StatusCode: status})
		if !errors.Is(err, want) {
			t.Fatalf("status %d should match %v", status, want)
		}
	}
	if errors.Is(&RequestError{StatusCode: 400}, ErrServer) {
		t.Fatalf("400 must not match ErrServer")
	}
}

func TestRequestErrorMessageTruncatesBody(t *testing.T) {
	err := &RequestError{Method: "POST", URL: "u", StatusCode: 500, Body: []byte(strings.Repeat("x", 2000))}
	if len(err.Error()) > 600 {
		t.Fatalf("message not truncated: %d bytes", len(err.Error()))
	}
	if msg := (&RequestError{Method: "GET", URL: "u", StatusCode: 500}).Error(); !strings.HasSuffix(msg, "status 500") {
		t.Fatalf("unexpected message for empty body %q", msg)
	}
}

func TestTransportErrorTimeout(t *testing.T) {
	deadline := &TransportError{Err: fmt.Errorf("do: %w", context.DeadlineExceeded)}
	if !deadline.Timeout() {
		t.Fatalf("deadline exceeded should be a timeout")
	}
	refused := &TransportError{Err: errors.New("connection refused")}
	if refused.Timeout() {
		t.Fatalf("plain error should not be a timeout")
	}
	if !errors.Is(deadline, context.DeadlineExceeded) {
		t.Fatalf("TransportError should unwrap to its cause")
	}
}

func TestConfigErrorUnwraps(t *testing.T) {
	err := &ConfigError{Path: "foo", Err: ErrInvalidPath}
	if !errors.Is(err, ErrInvalidPath) || !strings.Contains(err.Error(), `"foo"`) {
		t.Fatalf("unexpected ConfigError behaviour: %v", err)
	}
}
