package linter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/platinummonkey/csshint/pkg/css"
	"github.com/platinummonkey/csshint/pkg/observability"
	"github.com/platinummonkey/csshint/pkg/source"
)

// SyntaxErrorPrefix starts the message of every parse failure diagnostic.
const SyntaxErrorPrefix = "CSS syntax error: "

// LintEngine orchestrates the linting process
type LintEngine struct {
	registry *RuleRegistry
	logger   *observability.Logger
	metrics  *observability.Metrics
	tracer   trace.Tracer
}

// Option configures a LintEngine.
type Option func(*LintEngine)

// WithLogger sets the engine logger.
func WithLogger(logger *observability.Logger) Option {
	return func(e *LintEngine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records every check in metrics.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(e *LintEngine) {
		e.metrics = metrics
	}
}

// WithTracerProvider traces checks with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *LintEngine) {
		if tp != nil {
			e.tracer = tp.Tracer(observability.TracerName)
		}
	}
}

// NewLintEngine creates a new lint engine
func NewLintEngine(registry *RuleRegistry, opts ...Option) *LintEngine {
	if registry == nil {
		registry = NewRuleRegistry()
	}

	e := &LintEngine{
		registry: registry,
		logger:   observability.NopLogger(),
		tracer:   otel.Tracer(observability.TracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the rules the engine installs.
func (e *LintEngine) Registry() *RuleRegistry {
	return e.registry
}

// LintResult contains the result of linting a single file
type LintResult struct {
	FilePath    string       `json:"file"`
	Diagnostics []Diagnostic `json:"messages"`
	// ParseFailed is set when the file could not be parsed; Diagnostics then
	// holds exactly the syntax error.
	ParseFailed bool `json:"parseFailed,omitempty"`
	// Capped is set when max-error stopped further diagnostics.
	Capped bool `json:"-"`
}

// HasIssues reports whether anything was reported.
func (r *LintResult) HasIssues() bool {
	return r != nil && len(r.Diagnostics) > 0
}

type installedRule struct {
	name  string
	visit Visitor
}

// Lint checks one stylesheet. base is the configuration before inline
// directives and is not modified. Every call starts from fresh per-file
// state, so checking the same input twice yields identical results.
func (e *LintEngine) Lint(ctx context.Context, content, filePath string, base RuleConfig) *LintResult {
	start := time.Now()
	_, span := e.tracer.Start(ctx, "csshint.check", trace.WithAttributes(
		attribute.String("csshint.file", filePath),
		attribute.Int("csshint.size", len(content)),
	))
	defer span.End()

	raw := source.Normalize(content)
	text := source.StripBOM(raw)
	config := Resolve(text, base)
	maxErrors := config.MaxErrors()
	check := NewCheckContext(filePath, text, maxErrors)

	logger := e.logger.WithField("file", filePath)
	rules := e.install(config, raw, check)
	logger.WithField("rules", len(rules)).WithField("max_error", maxErrors).Debug("rules installed")

	result := &LintResult{FilePath: filePath}

	root, err := css.Parse(text)
	if err != nil {
		check.Report(syntaxDiagnostic(err))
		result.ParseFailed = true
		span.SetStatus(codes.Error, "parse failed")
		span.RecordError(err)
		logger.WithError(err).Debug("parse failed")
	} else {
		for _, rule := range rules {
			if check.Exhausted() {
				break
			}
			rule.visit(root)
		}
	}

	result.Diagnostics = check.Diagnostics()
	result.Capped = check.Exhausted()
	span.SetAttributes(
		attribute.Int("csshint.diagnostics", len(result.Diagnostics)),
		attribute.Bool("csshint.capped", result.Capped),
	)
	e.record(result, len(content), time.Since(start))
	return result
}

// install creates visitors for every configured rule the registry knows, in
// sorted name order. Falsy values and installers returning nil are skipped.
// Rules see the content with its byte order mark; positions are computed
// without it.
func (e *LintEngine) install(config RuleConfig, raw string, check *CheckContext) []installedRule {
	var rules []installedRule
	for _, info := range e.registry.GetEnabledRules(config) {
		visit := info.Install(Options{
			Value:     config[info.Name],
			Content:   raw,
			Path:      check.Path,
			MaxErrors: check.MaxErrors,
			Context:   check,
		})
		if visit == nil {
			continue
		}
		rules = append(rules, installedRule{name: info.Name, visit: visit})
	}
	return rules
}

func (e *LintEngine) record(result *LintResult, size int, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}
	outcome := observability.ResultClean
	switch {
	case result.ParseFailed:
		outcome = observability.ResultParseError
	case result.HasIssues():
		outcome = observability.ResultIssues
	}
	names := make([]string, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		names[i] = d.Rule
	}
	e.metrics.RecordCheck(outcome, size, elapsed, names, result.Capped)
}

// syntaxDiagnostic converts a parse failure into the single diagnostic of a
// failed file. Errors without a position carry only their message.
func syntaxDiagnostic(err error) Diagnostic {
	var syntaxErr *css.SyntaxError
	if errors.As(err, &syntaxErr) {
		return Diagnostic{
			Line:    syntaxErr.Line,
			Column:  syntaxErr.Column,
			Message: SyntaxErrorPrefix + syntaxErr.Reason,
		}
	}
	return Diagnostic{Message: fmt.Sprint(err)}
}
