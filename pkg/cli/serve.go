package cli

import (
	"context"
	"flag"
	"fmt"
	"net"
	"time"

	"github.com/platinummonkey/csshint/pkg/config"
	"github.com/platinummonkey/csshint/pkg/linter"
	"github.com/platinummonkey/csshint/pkg/linter/rules"
	"github.com/platinummonkey/csshint/pkg/middleware"
	"github.com/platinummonkey/csshint/pkg/observability"
	"github.com/platinummonkey/csshint/pkg/server"
)

type serveOptions struct {
	addr       string
	configFile string
}

// newServeCommand creates the serve command
func newServeCommand() *Command {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)

	opts := &serveOptions{}
	fs.StringVar(&opts.addr, "addr", "", "Address to listen on (default from CSSHINT_SERVER_ADDR, :8080)")
	fs.StringVar(&opts.configFile, "config", "", "Path to a .csshintrc used as the base configuration")

	return &Command{
		Name:        "serve",
		Description: "Serve the linter over HTTP",
		Flags:       fs,
		Run: func(args []string) error {
			if ok, err := parseFlags(fs, args); !ok {
				return err
			}
			return runServe(context.Background(), opts, nil)
		},
	}
}

// runServe serves until interrupted. A non-nil listening channel receives the
// bound address once the listener is open.
func runServe(ctx context.Context, opts *serveOptions, listening chan<- string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := observability.NewLoggerWithFormat(cfg.Observability.LogLevel, cfg.Observability.LogFormat, stderr)
	shutdown := observability.NewShutdownManager(logger, cfg.Run.ShutdownTimeout)
	defer func() {
		if err := shutdown.Shutdown(); err != nil {
			logger.WithError(err).Warn("shutdown failed")
		}
	}()

	providers, err := observability.InitOTel(ctx, cfg.OTel(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return observability.ShutdownOTel(ctx, providers, logger)
	})

	metrics := observability.NewMetrics(nil)
	registry := rules.NewRegistry()
	engine := linter.NewLintEngine(registry,
		linter.WithLogger(logger),
		linter.WithMetrics(metrics),
	)

	base := registry.Defaults()
	if opts.configFile != "" {
		loaded, err := linter.LoadConfig(opts.configFile)
		if err != nil {
			return err
		}
		base = base.Merge(loaded)
	}

	serverOpts := []server.Option{
		server.WithLogger(logger),
		server.WithMetrics(metrics),
		server.WithBaseConfig(base),
		server.WithMaxBodyBytes(int64(cfg.Server.MaxBodyBytes)),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Run.ShutdownTimeout),
	}
	if cfg.Server.RateLimit > 0 {
		serverOpts = append(serverOpts, server.WithRateLimiter(middleware.NewRateLimiter(&middleware.RateLimitConfig{
			RequestsPerWindow: cfg.Server.RateLimit,
			WindowDuration:    time.Minute,
			BurstSize:         cfg.Server.RateBurst,
		})))
	}

	server.Version = Version
	srv := server.NewServer(engine, serverOpts...)

	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if listening != nil {
		listening <- ln.Addr().String()
	}

	ctx, stop := shutdown.NotifyContext(ctx)
	defer stop()
	return srv.Serve(ctx, ln)
}
