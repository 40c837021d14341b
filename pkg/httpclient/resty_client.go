package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// Option customises the underlying resty client.
type Option func(*resty.Client)

// WithLogger routes resty's own warnings and debug output to l.
// A zap SugaredLogger satisfies resty.Logger.
func WithLogger(l resty.Logger) Option {
	return func(c *resty.Client) {
		if l != nil {
			c.SetLogger(l)
		}
	}
}

// WithTransport replaces the round tripper, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *resty.Client) {
		if rt != nil {
			c.SetTransport(rt)
		}
	}
}

// NewRestyClient creates a new RestyClient with the specified timeout.
func NewRestyClient(timeout time.Duration, opts ...Option) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout, opts...)}
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration, opts ...Option) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes req. Non-2xx statuses are not errors at this layer; only
// transport failures are returned.
func (r *RestyClient) Do(ctx context.Context, in Request) (Response, error) {
	method := strings.ToUpper(strings.TrimSpace(in.Method))
	if method == "" {
		return nil, fmt.Errorf("request method is empty")
	}

	req := r.client.R().SetContext(ctx)
	if len(in.Query) > 0 {
		req.SetQueryParamsFromValues(in.Query)
	}

	switch {
	case in.Multipart && len(in.Form) == 0 && len(in.Files) == 0:
		// resty only switches to multipart once a field is added.
		body, contentType, err := emptyMultipart()
		if err != nil {
			return nil, err
		}
		if !hasHeader(in.Headers, "Content-Type") {
			req.SetHeader("Content-Type", contentType)
		}
		req.SetBody(body)
	case in.Multipart:
		for field, values := range in.Form {
			for _, v := range values {
				req.SetMultipartField(field, "", "", strings.NewReader(v))
			}
		}
		for _, f := range in.Files {
			if f.Reader == nil {
				return nil, fmt.Errorf("multipart file %q has no reader", f.Field)
			}
			req.SetMultipartField(f.Field, f.Name, f.ContentType, f.Reader)
		}
	case in.JSONBody != nil:
		if !hasHeader(in.Headers, "Content-Type") {
			req.SetHeader("Content-Type", "application/json")
		}
		req.SetBody(in.JSONBody)
	}

	for k, v := range in.Headers {
		req.SetHeaderVerbatim(k, v)
	}

	resp, err := req.Execute(method, in.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

func emptyMultipart() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("build multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
