package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/csshint/pkg/linter"
)

func TestAll(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range All() {
		assert.False(t, seen[rule.Name()], "duplicate rule %s", rule.Name())
		seen[rule.Name()] = true
		assert.NotEmpty(t, rule.Description(), rule.Name())
		assert.NotNil(t, rule.Default(), rule.Name())
	}
	assert.Len(t, seen, 51)
	assert.False(t, seen[linter.MaxErrorKey])
}

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	info, ok := registry.GetRule("adjoining-classes")
	require.True(t, ok)
	assert.Equal(t, true, info.Default)

	defaults := registry.Defaults()
	assert.Equal(t, linter.DefaultMaxErrors, defaults[linter.MaxErrorKey])
	assert.Equal(t, false, defaults["box-sizing"])
	assert.Equal(t, []any{"font-weight", "line-height"}, defaults["require-number"])
}

func TestDefaultsInstallOnEveryRule(t *testing.T) {
	registry := NewRegistry()
	defaults := registry.Defaults()
	check := linter.NewCheckContext("a.css", "a {}", 0)

	for _, info := range registry.GetEnabledRules(defaults) {
		assert.NotPanics(t, func() {
			info.Install(linter.Options{
				Value:   defaults[info.Name],
				Content: "a {}",
				Path:    "a.css",
				Context: check,
			})
		}, info.Name)
	}
}

func TestCatalogScenarios(t *testing.T) {
	engine := linter.NewLintEngine(NewRegistry())
	ctx := context.Background()

	t.Run("adjoining classes only", func(t *testing.T) {
		result := engine.Lint(ctx, ".a.b { color: red }", "a.css", linter.RuleConfig{"adjoining-classes": true})
		require.Len(t, result.Diagnostics, 1)
		d := result.Diagnostics[0]
		assert.Equal(t, "adjoining-classes", d.Rule)
		assert.Equal(t, 1, d.Line)
		assert.Equal(t, 1, d.Column)
		assert.Equal(t, "Don't use adjoining classes.", d.Message)
	})

	t.Run("three rules on one line", func(t *testing.T) {
		config := linter.RuleConfig{
			"require-before-space": []any{"{"},
			"require-after-space":  []any{":"},
			"disallow-important":   true,
		}
		result := engine.Lint(ctx, "a{color:red!important}", "a.css", config)
		require.Len(t, result.Diagnostics, 3)

		rules := make([]string, 0, 3)
		for _, d := range result.Diagnostics {
			assert.Equal(t, 1, d.Line)
			rules = append(rules, d.Rule)
		}
		assert.Equal(t, []string{"disallow-important", "require-after-space", "require-before-space"}, rules)
		assert.Equal(t, 12, result.Diagnostics[0].Column)
		assert.Equal(t, 8, result.Diagnostics[1].Column)
		assert.Equal(t, 2, result.Diagnostics[2].Column)
	})

	t.Run("idempotent with file-scoped state", func(t *testing.T) {
		content := "a { color: #fff; font-family: Arial; }\nb { color: #FFF; font-family: arial; }\nh1 {}\nh1 {}"
		first := engine.Lint(ctx, content, "a.css", NewRegistry().Defaults())
		second := engine.Lint(ctx, content, "a.css", NewRegistry().Defaults())
		assert.Equal(t, first.Diagnostics, second.Diagnostics)
		assert.NotEmpty(t, first.Diagnostics)
	})

	t.Run("font family case is per file", func(t *testing.T) {
		config := linter.RuleConfig{"unifying-font-family-case-sensitive": true}
		first := engine.Lint(ctx, "a { font-family: Arial; }", "a.css", config)
		second := engine.Lint(ctx, "a { font-family: arial; }", "b.css", config)
		assert.Empty(t, first.Diagnostics)
		assert.Empty(t, second.Diagnostics)
	})

	t.Run("cap applies across rules", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 20; i++ {
			b.WriteString("#a.b.c { color: red !important; }\n")
		}
		config := NewRegistry().Defaults()
		config[linter.MaxErrorKey] = 5
		result := engine.Lint(ctx, b.String(), "a.css", config)
		assert.Len(t, result.Diagnostics, 5)
		assert.True(t, result.Capped)
	})

	t.Run("inline directives", func(t *testing.T) {
		content := "/* csshint-disable adjoining-classes */\n.a.b { color: red; }"
		result := engine.Lint(ctx, content, "a.css", linter.RuleConfig{"adjoining-classes": true, "ids": true})
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("parse failure", func(t *testing.T) {
		result := engine.Lint(ctx, "a {\n  color: red;\n", "a.css", NewRegistry().Defaults())
		require.Len(t, result.Diagnostics, 1)
		assert.True(t, result.ParseFailed)
		assert.Empty(t, result.Diagnostics[0].Rule)
		assert.Equal(t, "CSS syntax error: Unclosed block", result.Diagnostics[0].Message)
	})

	t.Run("byte order mark", func(t *testing.T) {
		result := engine.Lint(ctx, "\uFEFFa { color: red; }", "a.css", linter.RuleConfig{"no-bom": true})
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, "no-bom", result.Diagnostics[0].Rule)
		assert.False(t, result.Diagnostics[0].HasPosition())
	})
}
