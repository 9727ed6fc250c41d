package linter

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/platinummonkey/csshint/pkg/observability"
)

const threeRules = "a { color: red; }\nb { color: blue; }\ni { margin: 0; }\n"

func TestLintEngine_Lint(t *testing.T) {
	registry := testRegistry()
	engine := NewLintEngine(registry)
	ctx := context.Background()

	t.Run("rules run in name order", func(t *testing.T) {
		result := engine.Lint(ctx, "a { color: red; }", "a.css", registry.Defaults())
		require.Len(t, result.Diagnostics, 2)
		assert.Equal(t, "every-decl", result.Diagnostics[0].Rule)
		assert.Equal(t, "every-rule", result.Diagnostics[1].Rule)
		assert.Equal(t, 1, result.Diagnostics[1].Line)
		assert.Equal(t, 1, result.Diagnostics[1].Column)
		assert.Equal(t, 5, result.Diagnostics[0].Column)
		assert.False(t, result.ParseFailed)
	})

	t.Run("idempotent", func(t *testing.T) {
		first := engine.Lint(ctx, threeRules, "a.css", registry.Defaults())
		second := engine.Lint(ctx, threeRules, "a.css", registry.Defaults())
		assert.Equal(t, first, second)
	})

	t.Run("unknown and falsy keys install nothing", func(t *testing.T) {
		result := engine.Lint(ctx, threeRules, "a.css", RuleConfig{"unknown": true, "every-rule": 0})
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("installer can decline", func(t *testing.T) {
		result := engine.Lint(ctx, threeRules, "a.css", RuleConfig{"every-decl": "off"})
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("base config is not modified", func(t *testing.T) {
		base := registry.Defaults()
		engine.Lint(ctx, "/* csshint-disable */ a{}", "a.css", base)
		assert.Equal(t, true, base["every-rule"])
	})

	t.Run("BOM is stripped before parsing", func(t *testing.T) {
		result := engine.Lint(ctx, "\uFEFFa{}", "a.css", RuleConfig{"every-rule": true})
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, 1, result.Diagnostics[0].Column)
	})

	t.Run("CRLF is normalized", func(t *testing.T) {
		result := engine.Lint(ctx, "a{}\r\nb{}", "a.css", RuleConfig{"every-rule": true})
		require.Len(t, result.Diagnostics, 2)
		assert.Equal(t, 2, result.Diagnostics[1].Line)
	})
}

func TestLintEngine_MaxErrors(t *testing.T) {
	registry := testRegistry()
	engine := NewLintEngine(registry)
	ctx := context.Background()

	t.Run("budget is shared across rules", func(t *testing.T) {
		config := RuleConfig{"every-rule": true, "every-decl": true, MaxErrorKey: 4}
		result := engine.Lint(ctx, threeRules, "a.css", config)
		require.Len(t, result.Diagnostics, 4)
		assert.True(t, result.Capped)
		assert.Equal(t, "every-decl", result.Diagnostics[2].Rule)
		assert.Equal(t, "every-rule", result.Diagnostics[3].Rule)
	})

	t.Run("cap of one", func(t *testing.T) {
		config := RuleConfig{"every-rule": true, MaxErrorKey: 1}
		result := engine.Lint(ctx, threeRules, "a.css", config)
		assert.Len(t, result.Diagnostics, 1)
	})

	t.Run("non-positive is unbounded", func(t *testing.T) {
		var sheet strings.Builder
		for i := 0; i < 150; i++ {
			sheet.WriteString("a{}\n")
		}
		for _, value := range []any{0, -1, "lots", false} {
			config := RuleConfig{"every-rule": true, MaxErrorKey: value}
			result := engine.Lint(ctx, sheet.String(), "a.css", config)
			assert.Len(t, result.Diagnostics, 150, "%v", value)
			assert.False(t, result.Capped)
		}
	})

	t.Run("inline override sets the budget", func(t *testing.T) {
		content := "/* csshint max-error: 2 */\n" + threeRules
		result := engine.Lint(ctx, content, "a.css", RuleConfig{"every-rule": true, MaxErrorKey: 100})
		assert.Len(t, result.Diagnostics, 2)
	})

	t.Run("budget resets between files", func(t *testing.T) {
		config := RuleConfig{"every-rule": true, MaxErrorKey: 2}
		engine.Lint(ctx, threeRules, "a.css", config)
		result := engine.Lint(ctx, "a{}", "b.css", config)
		assert.Len(t, result.Diagnostics, 1)
	})
}

func TestLintEngine_Directives(t *testing.T) {
	registry := testRegistry()
	engine := NewLintEngine(registry)
	ctx := context.Background()

	t.Run("disable wins over later override", func(t *testing.T) {
		content := "/* csshint-disable every-rule */\n/* csshint every-rule: true */\na{}"
		result := engine.Lint(ctx, content, "a.css", RuleConfig{"every-rule": true})
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("override enables a configured rule", func(t *testing.T) {
		content := "/* csshint every-rule: true */\na{}"
		result := engine.Lint(ctx, content, "a.css", RuleConfig{"every-rule": false})
		assert.Len(t, result.Diagnostics, 1)
	})
}

func TestLintEngine_ParseFailure(t *testing.T) {
	registry := testRegistry()
	engine := NewLintEngine(registry)

	result := engine.Lint(context.Background(), "a {\n  color: red;\n", "broken.css", registry.Defaults())

	assert.True(t, result.ParseFailed)
	require.Len(t, result.Diagnostics, 1)
	d := result.Diagnostics[0]
	assert.Empty(t, d.Rule)
	assert.True(t, d.IsSyntaxError())
	assert.Equal(t, 1, d.Line)
	assert.Equal(t, 1, d.Column)
	assert.Equal(t, SyntaxErrorPrefix+"Unclosed block", d.Message)
	assert.NotEmpty(t, d.ColorMessage)
}

func TestSyntaxDiagnostic_NonPositional(t *testing.T) {
	d := syntaxDiagnostic(assert.AnError)
	assert.Equal(t, assert.AnError.Error(), d.Message)
	assert.False(t, d.HasPosition())
}

func TestLintEngine_Instrumentation(t *testing.T) {
	registry := testRegistry()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	engine := NewLintEngine(registry,
		WithTracerProvider(tp),
		WithMetrics(metrics),
		WithLogger(observability.NopLogger()),
	)

	engine.Lint(context.Background(), threeRules, "a.css", RuleConfig{"every-rule": true})
	engine.Lint(context.Background(), "a{", "b.css", RuleConfig{"every-rule": true})
	engine.Lint(context.Background(), "", "c.css", RuleConfig{"every-rule": true})

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "csshint.check", spans[0].Name())

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FilesCheckedTotal.WithLabelValues(observability.ResultIssues)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FilesCheckedTotal.WithLabelValues(observability.ResultParseError)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FilesCheckedTotal.WithLabelValues(observability.ResultClean)))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.DiagnosticsTotal.WithLabelValues("every-rule")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DiagnosticsTotal.WithLabelValues("syntax")))
}
