package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/gunbroker/internal/config"
	"github.com/samvad-hq/gunbroker/internal/logger"
	"github.com/samvad-hq/gunbroker/pkg/gunbroker"
)

// Supported operations.
const (
	OpGet           = "get"
	OpDelete        = "delete"
	OpPost          = "post"
	OpPut           = "put"
	OpMultipartPost = "multipart"
)

// Invocation is a single API call requested from the command line.
type Invocation struct {
	Operation string
	Path      string
	Params    map[string]any
	Headers   map[string]string
	// Files maps a multipart field to a local file path.
	Files     map[string]string
	Strict    bool
	WithToken bool
}

// Invoker performs invocations against the GunBroker API and prints the
// response body.
type Invoker struct {
	client *gunbroker.Client
	log    logger.Logger
	out    io.Writer
}

// NewInvoker builds an invoker from config. Extra client options are applied
// after the logger and root URL options.
func NewInvoker(cfg *config.Config, log logger.Logger, out io.Writer, opts ...gunbroker.Option) (*Invoker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if out == nil {
		out = os.Stdout
	}

	clientOpts := append([]gunbroker.Option{
		gunbroker.WithLogger(log),
		gunbroker.WithRootURLs(cfg.RootURL, cfg.SandboxRootURL),
	}, opts...)
	return &Invoker{
		client: gunbroker.NewClient(cfg.GunBroker(), clientOpts...),
		log:    log,
		out:    out,
	}, nil
}

// Run performs inv. In safe mode a non-2xx status is logged and Run returns
// nil without output; in strict mode the *gunbroker.RequestError is returned.
func (i *Invoker) Run(ctx context.Context, inv Invocation) error {
	op := strings.ToLower(strings.TrimSpace(inv.Operation))

	params := gunbroker.Params(inv.Params)
	closers, err := i.attachFiles(op, &params, inv.Files)
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	if err != nil {
		return err
	}

	headers := gunbroker.Headers{}
	if inv.WithToken {
		for k, v := range i.client.AuthHeaders("") {
			headers[k] = v
		}
	}
	for k, v := range inv.Headers {
		headers[k] = v
	}

	api, err := i.client.New(inv.Path, params, headers)
	if err != nil {
		return err
	}

	var res *gunbroker.Result
	switch op {
	case OpGet:
		res, err = api.Get(ctx)
	case OpDelete:
		res, err = api.Delete(ctx)
	case OpPost:
		res, err = api.Post(ctx)
	case OpPut:
		res, err = api.Put(ctx)
	case OpMultipartPost:
		res, err = api.MultipartPost(ctx)
	default:
		return fmt.Errorf("unsupported operation %q", inv.Operation)
	}

	if inv.Strict {
		resp, err := gunbroker.Strict(res, err)
		if err != nil {
			return err
		}
		return i.print(resp)
	}

	if err != nil {
		return err
	}
	if !res.OK() {
		i.log.WarnObj("request returned no result", "result", map[string]any{
			"operation": op,
			"url":       api.URL(),
			"status":    res.StatusCode(),
		})
		return nil
	}
	return i.print(res.Response())
}

func (i *Invoker) attachFiles(op string, params *gunbroker.Params, files map[string]string) ([]io.Closer, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if op != OpMultipartPost {
		return nil, fmt.Errorf("file uploads require the %q operation", OpMultipartPost)
	}

	merged := make(gunbroker.Params, len(*params)+len(files))
	for k, v := range *params {
		merged[k] = v
	}

	var closers []io.Closer
	for field, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return closers, fmt.Errorf("open upload %s: %w", field, err)
		}
		closers = append(closers, f)
		merged[field] = gunbroker.File{Name: filepath.Base(path), Reader: f}
	}
	*params = merged
	return closers, nil
}

func (i *Invoker) print(resp *gunbroker.Response) error {
	if resp == nil || resp.IsNull() {
		return nil
	}
	enc := json.NewEncoder(i.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp.Interface()); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
