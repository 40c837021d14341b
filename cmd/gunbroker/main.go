package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/samvad-hq/gunbroker/internal/app"
	"github.com/samvad-hq/gunbroker/internal/config"
	"github.com/samvad-hq/gunbroker/internal/logger"
	"github.com/samvad-hq/gunbroker/internal/payload"
	"github.com/samvad-hq/gunbroker/pkg/gunbroker"
	"github.com/samvad-hq/gunbroker/pkg/httpclient"
)

const usage = `usage: gunbroker [flags] <get|delete|post|put|multipart> <path>

flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "gunbroker: %v\n", err)
		os.Exit(1)
	}
}

// run executes one command. The response body is the only thing written to
// stdout; logs and usage go to stderr.
func run(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("gunbroker", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)
	paramPairs := fs.StringArrayP("param", "p", nil, "request parameter key=value (repeatable)")
	headerPairs := fs.StringArrayP("header", "H", nil, "request header key=value (repeatable)")
	filePairs := fs.StringArrayP("file", "f", nil, "multipart upload field=path (repeatable)")
	payloadFile := fs.String("payload", "", "YAML or JSON file with params and headers")
	strict := fs.Bool("strict", false, "fail on non-2xx responses")
	withToken := fs.Bool("with-token", false, "send the configured access token as X-AccessToken")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("expected an operation and a path, got %d arguments", fs.NArg())
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg.LogLevel, stderr)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	inv, err := buildInvocation(fs.Arg(0), fs.Arg(1), *payloadFile, *paramPairs, *headerPairs, *filePairs)
	if err != nil {
		return err
	}
	inv.Strict = *strict
	inv.WithToken = *withToken

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transport := httpclient.NewRestyClient(cfg.Timeout, httpclient.WithLogger(log.S))
	invoker, err := app.NewInvoker(cfg, log, stdout, gunbroker.WithHTTPClient(transport))
	if err != nil {
		return err
	}

	log.DebugObj("gunbroker invocation", "invocation", map[string]any{
		"operation": inv.Operation,
		"path":      inv.Path,
		"sandbox":   cfg.Sandbox,
		"strict":    inv.Strict,
	})
	return invoker.Run(ctx, inv)
}

func buildInvocation(op, path, payloadFile string, params, headers, files []string) (app.Invocation, error) {
	inv := app.Invocation{
		Operation: strings.ToLower(op),
		Path:      path,
		Params:    map[string]any{},
		Headers:   map[string]string{},
	}

	if strings.TrimSpace(payloadFile) != "" {
		p, err := payload.Load(payloadFile)
		if err != nil {
			return inv, fmt.Errorf("load payload: %w", err)
		}
		for k, v := range p.Params {
			inv.Params[k] = v
		}
		for k, v := range p.Headers {
			inv.Headers[k] = v
		}
	}

	pairs, err := payload.ParsePairs(params)
	if err != nil {
		return inv, fmt.Errorf("--param: %w", err)
	}
	for k, v := range pairs {
		inv.Params[k] = v
	}

	pairs, err = payload.ParsePairs(headers)
	if err != nil {
		return inv, fmt.Errorf("--header: %w", err)
	}
	for k, v := range pairs {
		inv.Headers[k] = v
	}

	inv.Files, err = payload.ParsePairs(files)
	if err != nil {
		return inv, fmt.Errorf("--file: %w", err)
	}
	return inv, nil
}
