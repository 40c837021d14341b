package gunbroker

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/samvad-hq/gunbroker/pkg/httpclient"
)

const (
	// RootURL is the production API root.
	RootURL = "https://api.gunbroker.com/v1"
	// SandboxRootURL is the sandbox API root.
	SandboxRootURL = "https://api.sandbox.gunbroker.com/v1"

	// DefaultTimeout applies when Config.Timeout is zero.
	DefaultTimeout = 30 * time.Second

	// HeaderDevKey carries Config.DevKey.
	HeaderDevKey = "X-DevKey"
	// HeaderAccessToken carries a user access token.
	HeaderAccessToken = "X-AccessToken"
)

// Config holds the credentials and transport settings shared by every request
// a Client makes.
type Config struct {
	DevKey      string
	AccessToken string
	Timeout     time.Duration
	Sandbox     bool
}

// Client creates per-request API instances against the production or sandbox
// root. It is safe for concurrent use.
type Client struct {
	cfg        Config
	sandbox    atomic.Bool
	http       httpclient.Client
	log        Logger
	rootURL    string
	sandboxURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the resty-backed transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger enables request logging. Without it the client logs nothing.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		c.log = ensureLogger(log)
	}
}

// WithRootURLs overrides the production and sandbox roots. Empty values keep
// the defaults.
func WithRootURLs(production, sandbox string) Option {
	return func(c *Client) {
		if p := strings.TrimRight(strings.TrimSpace(production), "/"); p != "" {
			c.rootURL = p
		}
		if s := strings.TrimRight(strings.TrimSpace(sandbox), "/"); s != "" {
			c.sandboxURL = s
		}
	}
}

// NewClient builds a client from cfg.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &Client{
		cfg:        cfg,
		log:        noopLogger{},
		rootURL:    RootURL,
		sandboxURL: SandboxRootURL,
	}
	c.sandbox.Store(cfg.Sandbox)
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(cfg.Timeout)
	}
	return c
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config { return c.cfg }

// SetSandbox switches the root used by API instances created afterwards.
// Existing instances keep the root they were created with.
func (c *Client) SetSandbox(on bool) { c.sandbox.Store(on) }

// Sandbox reports whether new API instances target the sandbox.
func (c *Client) Sandbox() bool { return c.sandbox.Load() }

// New prepares a single request to path. Params and headers are kept as
// given and used when the request is performed.
func (c *Client) New(path string, params Params, headers Headers) (*API, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, &ConfigError{Path: path, Err: ErrInvalidPath}
	}

	base := c.rootURL
	if c.sandbox.Load() {
		base = c.sandboxURL
	}

	return &API{
		client:  c,
		path:    path,
		params:  params,
		headers: headers,
		baseURL: base,
	}, nil
}

// AuthHeaders returns the X-AccessToken header for token, falling back to the
// configured default token. It returns nil if neither is set.
func (c *Client) AuthHeaders(token string) Headers {
	if token = strings.TrimSpace(token); token == "" {
		token = c.cfg.AccessToken
	}
	if token == "" {
		return nil
	}
	return Headers{HeaderAccessToken: token}
}

// AccessToken exchanges account credentials for an access token.
func (c *Client) AccessToken(ctx context.Context, username, password string) (string, error) {
	resp, err := c.PostStrict(ctx, "/Users/AccessToken", Params{
		"Username": username,
		"Password": password,
	}, nil)
	if err != nil {
		return "", err
	}
	token, ok := resp.GetString("accessToken")
	if !ok || token == "" {
		return "", &DecodeError{
			StatusCode: resp.StatusCode(),
			Body:       resp.Raw(),
			Err:        fmt.Errorf("response has no accessToken"),
		}
	}
	return token, nil
}

// Get is shorthand for New followed by API.Get.
func (c *Client) Get(ctx context.Context, path string, params Params, headers Headers) (*Result, error) {
	api, err := c.New(path, params, headers)
	if err != nil {
		return nil, err
	}
	return api.Get(ctx)
}

// GetStrict is shorthand for New followed by API.GetStrict.
func (c *Client) GetStrict(ctx context.Context, path string, params Params, headers Headers) (*Response, error) {
	return Strict(c.Get(ctx, path, params, headers))
}

// Delete is shorthand for New followed by API.Delete.
func (c *Client) Delete(ctx context.Context, path string, params Params, headers Headers) (*Result, error) {
	api, err := c.New(path, params, headers)
	if err != nil {
		return nil, err
	}
	return api.Delete(ctx)
}

// DeleteStrict is shorthand for New followed by API.DeleteStrict.
func (c *Client) DeleteStrict(ctx context.Context, path string, params Params, headers Headers) (*Response, error) {
	return Strict(c.Delete(ctx, path, params, headers))
}

// Post is shorthand for New followed by API.Post.
func (c *Client) Post(ctx context.Context, path string, params Params, headers Headers) (*Result, error) {
	api, err := c.New(path, params, headers)
	if err != nil {
		return nil, err
	}
	return api.Post(ctx)
}

// PostStrict is shorthand for New followed by API.PostStrict.
func (c *Client) PostStrict(ctx context.Context, path string, params Params, headers Headers) (*Response, error) {
	return Strict(c.Post(ctx, path, params, headers))
}

// Put is shorthand for New followed by API.Put.
func (c *Client) Put(ctx context.Context, path string, params Params, headers Headers) (*Result, error) {
	api, err := c.New(path, params, headers)
	if err != nil {
		return nil, err
	}
	return api.Put(ctx)
}

// PutStrict is shorthand for New followed by API.PutStrict.
func (c *Client) PutStrict(ctx context.Context, path string, params Params, headers Headers) (*Response, error) {
	return Strict(c.Put(ctx, path, params, headers))
}

// MultipartPost is shorthand for New followed by API.MultipartPost.
func (c *Client) MultipartPost(ctx context.Context, path string, params Params, headers Headers) (*Result, error) {
	api, err := c.New(path, params, headers)
	if err != nil {
		return nil, err
	}
	return api.MultipartPost(ctx)
}

// MultipartPostStrict is shorthand for New followed by API.MultipartPostStrict.
func (c *Client) MultipartPostStrict(ctx context.Context, path string, params Params, headers Headers) (*Response, error) {
	return Strict(c.MultipartPost(ctx, path, params, headers))
}
