package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Request describes a single outbound call. Query is sent on the URL, JSONBody
// is encoded as the request body, and Multipart switches the body to
// multipart/form-data built from Form and Files. Header names are sent
// exactly as given.
type Request struct {
	Method    string
	URL       string
	Headers   map[string]string
	Query     url.Values
	JSONBody  any
	Multipart bool
	Form      url.Values
	Files     []File
}

// File is a multipart file part.
type File struct {
	Field       string
	Name        string
	ContentType string
	Reader      io.Reader
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}
