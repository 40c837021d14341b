package gunbroker

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/gunbroker/pkg/httpclient"
)

// API is a single prepared request. Create one with Client.New, perform one
// operation on it, and discard it.
type API struct {
	client  *Client
	path    string
	params  Params
	headers Headers
	baseURL string
}

// BaseURL is the root chosen when the instance was created.
func (a *API) BaseURL() string { return a.baseURL }

// Path is the request path relative to BaseURL.
func (a *API) Path() string { return a.path }

// URL is BaseURL joined with Path, without a query string.
func (a *API) URL() string { return a.baseURL + a.path }

// Get sends params as the query string.
func (a *API) Get(ctx context.Context) (*Result, error) {
	return a.do(ctx, httpclient.Request{Method: http.MethodGet, Query: a.params.queryValues()})
}

// GetStrict is Get with non-2xx statuses returned as *RequestError.
func (a *API) GetStrict(ctx context.Context) (*Response, error) {
	return Strict(a.Get(ctx))
}

// Delete sends params as the query string.
func (a *API) Delete(ctx context.Context) (*Result, error) {
	return a.do(ctx, httpclient.Request{Method: http.MethodDelete, Query: a.params.queryValues()})
}

// DeleteStrict is Delete with non-2xx statuses returned as *RequestError.
func (a *API) DeleteStrict(ctx context.Context) (*Response, error) {
	return Strict(a.Delete(ctx))
}

// Post sends params as a JSON object.
func (a *API) Post(ctx context.Context) (*Result, error) {
	return a.do(ctx, httpclient.Request{Method: http.MethodPost, JSONBody: a.params.jsonBody()})
}

// PostStrict is Post with non-2xx statuses returned as *RequestError.
func (a *API) PostStrict(ctx context.Context) (*Response, error) {
	return Strict(a.Post(ctx))
}

// Put sends params as a JSON object.
func (a *API) Put(ctx context.Context) (*Result, error) {
	return a.do(ctx, httpclient.Request{Method: http.MethodPut, JSONBody: a.params.jsonBody()})
}

// PutStrict is Put with non-2xx statuses returned as *RequestError.
func (a *API) PutStrict(ctx context.Context) (*Response, error) {
	return Strict(a.Put(ctx))
}

// MultipartPost sends params as multipart/form-data. File values become
// file parts, everything else plain fields. Empty params still produce a
// multipart body with no parts.
func (a *API) MultipartPost(ctx context.Context) (*Result, error) {
	form, files := a.params.multipart()
	return a.do(ctx, httpclient.Request{
		Method:    http.MethodPost,
		Multipart: true,
		Form:      form,
		Files:     files,
	})
}

// MultipartPostStrict is MultipartPost with non-2xx statuses returned as *RequestError.
func (a *API) MultipartPostStrict(ctx context.Context) (*Response, error) {
	return Strict(a.MultipartPost(ctx))
}

func (a *API) do(ctx context.Context, req httpclient.Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, a.client.cfg.Timeout)
	defer cancel()

	req.URL = a.URL()
	req.Headers = a.requestHeaders()

	log := a.client.log
	start := time.Now()
	resp, err := a.client.http.Do(ctx, req)
	if err != nil {
		log.ErrorObj("gunbroker request failed", "request", map[string]any{
			"method": req.Method,
			"url":    req.URL,
			"error":  err.Error(),
		})
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	status := resp.StatusCode()
	log.DebugObj("gunbroker request", "request", map[string]any{
		"method":     req.Method,
		"url":        req.URL,
		"status":     status,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if status < 200 || status > 299 {
		reqErr := &RequestError{
			Method:     req.Method,
			URL:        req.URL,
			StatusCode: status,
			Body:       resp.Body(),
		}
		log.WarnObj("gunbroker request rejected", "request", map[string]any{
			"method": req.Method,
			"url":    req.URL,
			"status": status,
			"body":   bodySnippet(reqErr.Body),
		})
		return &Result{status: status, err: reqErr}, nil
	}

	parsed, err := newResponse(status, resp.Header(), resp.Body())
	if err != nil {
		return nil, err
	}
	return &Result{status: status, response: parsed}, nil
}

// requestHeaders copies the caller headers and adds X-DevKey from the client
// config unless the caller already set it. The caller's map is not modified.
func (a *API) requestHeaders() map[string]string {
	out := make(map[string]string, len(a.headers)+1)
	for k, v := range a.headers {
		out[k] = v
	}
	devKey := a.client.cfg.DevKey
	if devKey == "" {
		return out
	}
	for k := range out {
		if strings.EqualFold(k, HeaderDevKey) {
			return out
		}
	}
	out[HeaderDevKey] = devKey
	return out
}
