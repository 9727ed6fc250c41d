package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckContext_Report(t *testing.T) {
	check := NewCheckContext("a.css", "a { color: red }\n", 2)

	assert.True(t, check.Report(Diagnostic{Rule: "r", Line: 1, Column: 5, ErrorChar: "color", Message: "one"}))
	assert.False(t, check.Exhausted())
	assert.True(t, check.Report(Diagnostic{Rule: "r", Message: "two"}))
	assert.True(t, check.Exhausted())
	assert.False(t, check.Report(Diagnostic{Rule: "r", Message: "three"}))

	diags := check.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, 2, check.Count())
	assert.Contains(t, diags[0].ColorMessage, "one")
	assert.Contains(t, diags[0].ColorMessage, "color")
	assert.NotEqual(t, diags[0].Message, diags[0].ColorMessage)
	assert.Contains(t, diags[1].ColorMessage, "two")
}

func TestCheckContext_Unbounded(t *testing.T) {
	check := NewCheckContext("a.css", "", -5)
	assert.Equal(t, 0, check.MaxErrors)
	for i := 0; i < 500; i++ {
		require.True(t, check.Report(Diagnostic{Rule: "r", Message: "x"}))
	}
	assert.False(t, check.Exhausted())
}

func TestCheckContext_KeepsColorMessage(t *testing.T) {
	check := NewCheckContext("a.css", "a{}", 0)
	check.Report(Diagnostic{Rule: "r", Line: 1, Column: 1, Message: "m", ColorMessage: "custom"})
	assert.Equal(t, "custom", check.Diagnostics()[0].ColorMessage)
}

func TestCheckContext_DiagnosticsIsACopy(t *testing.T) {
	check := NewCheckContext("a.css", "a{}", 0)
	check.Report(Diagnostic{Rule: "r", Message: "m"})
	diags := check.Diagnostics()
	diags[0].Message = "changed"
	assert.Equal(t, "m", check.Diagnostics()[0].Message)
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{"full", Diagnostic{Rule: "ids", Line: 3, Column: 7, Message: "no ids"}, "ids: line 3, col 7: no ids"},
		{"line only", Diagnostic{Rule: "max-length", Line: 2, Message: "too long"}, "max-length: line 2: too long"},
		{"no position", Diagnostic{Rule: "no-bom", Message: "has bom"}, "no-bom: has bom"},
		{"syntax", Diagnostic{Line: 1, Column: 1, Message: SyntaxErrorPrefix + "Unclosed block"}, "line 1, col 1: CSS syntax error: Unclosed block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}
