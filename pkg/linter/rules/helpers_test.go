package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/csshint/pkg/linter"
)

type expect struct {
	line     int
	col      int
	contains string
}

type ruleCase struct {
	name    string
	rule    string
	value   any
	content string
	want    []expect
}

// lint checks content with only the given configuration enabled.
func lint(t *testing.T, content string, config linter.RuleConfig) []linter.Diagnostic {
	t.Helper()
	engine := linter.NewLintEngine(NewRegistry())
	result := engine.Lint(context.Background(), content, "test.css", config)
	require.False(t, result.ParseFailed, "unexpected parse failure: %v", result.Diagnostics)
	return result.Diagnostics
}

func runCases(t *testing.T, cases []ruleCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			value := tt.value
			if value == nil {
				value = true
			}
			diags := lint(t, tt.content, linter.RuleConfig{tt.rule: value})
			require.Len(t, diags, len(tt.want), "diagnostics: %v", diags)
			for i, want := range tt.want {
				assert.Equal(t, tt.rule, diags[i].Rule)
				assert.Equal(t, want.line, diags[i].Line, "line of %q", diags[i].Message)
				assert.Equal(t, want.col, diags[i].Column, "column of %q", diags[i].Message)
				assert.Contains(t, diags[i].Message, want.contains)
			}
		})
	}
}
