package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/platinummonkey/csshint/pkg/config"
	"github.com/platinummonkey/csshint/pkg/linter"
	"github.com/platinummonkey/csshint/pkg/linter/rules"
	"github.com/platinummonkey/csshint/pkg/observability"
)

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type checkOptions struct {
	configFile    string
	format        string
	maxError      int
	ignores       stringList
	watch         bool
	explain       bool
	stdin         bool
	stdinFilename string
	metricsFile   string
	color         string
}

// newCheckCommand creates the check command
func newCheckCommand() *Command {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)

	opts := &checkOptions{}
	fs.StringVar(&opts.configFile, "config", "", "Path to a .csshintrc file used for every checked file")
	fs.StringVar(&opts.format, "format", "text", "Output format: text, json, github, sarif")
	fs.IntVar(&opts.maxError, "max-error", -1, "Maximum diagnostics per file (0 for unlimited)")
	fs.Var(&opts.ignores, "ignore", "Glob of files to skip (repeatable)")
	fs.BoolVar(&opts.watch, "watch", false, "Re-check files when they change")
	fs.BoolVar(&opts.explain, "explain", false, "Log the inline directives found in each file")
	fs.BoolVar(&opts.stdin, "stdin", false, "Read the stylesheet from standard input")
	fs.StringVar(&opts.stdinFilename, "stdin-filename", "stdin.css", "Path used for configuration lookup and reports with -stdin")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	fs.StringVar(&opts.color, "color", "auto", "Highlight messages: auto, always, never")

	return &Command{
		Name:        "check",
		Description: "Check CSS files for code style issues",
		Flags:       fs,
		Run: func(args []string) error {
			if ok, err := parseFlags(fs, args); !ok {
				return err
			}
			return runCheck(context.Background(), opts, fs.Args())
		},
	}
}

// checkEnv holds everything a check run needs.
type checkEnv struct {
	cfg      *config.Config
	logger   *observability.Logger
	metrics  *observability.Metrics
	runner   *linter.Runner
	reporter *linter.Reporter
	shutdown *observability.ShutdownManager
}

func newCheckEnv(ctx context.Context, opts *checkOptions) (*checkEnv, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	metricsFile := opts.metricsFile
	if metricsFile == "" {
		metricsFile = cfg.Observability.MetricsFile
	}
	opts.metricsFile = metricsFile

	format, err := linter.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	useColor, err := colorEnabled(opts.color, format)
	if err != nil {
		return nil, err
	}

	level := cfg.Observability.LogLevel
	if opts.explain && level > observability.InfoLevel {
		level = observability.InfoLevel
	}
	logger := observability.NewLoggerWithFormat(level, cfg.Observability.LogFormat, stderr)
	shutdown := observability.NewShutdownManager(logger, cfg.Run.ShutdownTimeout)

	providers, err := observability.InitOTel(ctx, cfg.OTel(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
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

	cacheSize, cacheTTL := cacheBounds(cfg, opts.watch)
	configs := linter.NewConfigLoader(registry.Defaults(), cacheSize, cacheTTL).WithMetrics(metrics)
	if opts.configFile != "" {
		if err := configs.UseFile(opts.configFile); err != nil {
			return nil, err
		}
	}

	ignores, err := linter.NewIgnoreMatcher(opts.ignores, cacheSize, cacheTTL)
	if err != nil {
		return nil, err
	}
	ignores.WithMetrics(metrics)

	var overrides linter.RuleConfig
	if opts.maxError >= 0 {
		overrides = linter.RuleConfig{linter.MaxErrorKey: opts.maxError}
	}

	return &checkEnv{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		runner: &linter.Runner{
			Engine:     engine,
			Configs:    configs,
			Ignores:    ignores,
			Logger:     logger,
			Metrics:    metrics,
			MaxWorkers: cfg.Run.MaxWorkers,
			Overrides:  overrides,
			Explain:    opts.explain,
		},
		reporter: linter.NewReporter(stdout, format).WithColor(useColor),
		shutdown: shutdown,
	}, nil
}

// cacheBounds returns the configuration and ignore cache limits. A one-shot
// run keeps every entry for its whole duration; only watch mode, which
// outlives edits to rc files, bounds and expires them.
func cacheBounds(cfg *config.Config, watching bool) (int, time.Duration) {
	if !watching {
		return 0, 0
	}
	return cfg.Run.CacheSize, cfg.Run.CacheTTL
}

// colorEnabled resolves the -color flag. Only the text format is colored.
func colorEnabled(mode string, format linter.Format) (bool, error) {
	switch strings.ToLower(mode) {
	case "always":
		color.NoColor = false
		return format == linter.FormatText, nil
	case "never":
		color.NoColor = true
		return false, nil
	case "auto":
		return format == linter.FormatText && !color.NoColor, nil
	default:
		return false, fmt.Errorf("invalid color mode: %s (must be auto, always, or never)", mode)
	}
}

func runCheck(ctx context.Context, opts *checkOptions, paths []string) error {
	env, err := newCheckEnv(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := env.shutdown.Shutdown(); err != nil {
			env.logger.WithError(err).Warn("shutdown failed")
		}
	}()

	if opts.stdin {
		return env.checkStdin(ctx, opts)
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	if opts.watch {
		ctx, stop := env.shutdown.NotifyContext(ctx)
		defer stop()
		w := &watcher{
			runner:   env.runner,
			reporter: env.reporter,
			logger:   env.logger,
			debounce: env.cfg.Run.WatchDebounce,
		}
		return w.Watch(ctx, paths)
	}

	results, err := env.runner.Run(ctx, paths)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFiles, strings.Join(paths, ", "))
	}
	return env.finish(results, opts)
}

func (e *checkEnv) checkStdin(ctx context.Context, opts *checkOptions) error {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	result, err := e.runner.Check(ctx, string(data), opts.stdinFilename)
	if err != nil {
		return err
	}
	return e.finish([]*linter.LintResult{result}, opts)
}

// finish reports results, exports metrics and maps issues to ErrIssuesFound.
func (e *checkEnv) finish(results []*linter.LintResult, opts *checkOptions) error {
	if err := e.reporter.Report(results); err != nil {
		return err
	}
	if opts.metricsFile != "" {
		if err := e.metrics.WriteToFile(opts.metricsFile); err != nil {
			return err
		}
	}
	if linter.HasIssues(results) {
		return ErrIssuesFound
	}
	return nil
}
