package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitRules(t *testing.T) {
	runCases(t, []ruleCase{
		{
			name:    "zero with unit",
			rule:    "zero-unit",
			content: "a { margin: 0px; }",
			want:    []expect{{1, 13, `found "0px"`}},
		},
		{
			name:    "zero without unit and zero time",
			rule:    "zero-unit",
			content: "a { margin: 0; transition: 0s; }",
		},
		{
			name:    "leading zero",
			rule:    "leading-zero",
			content: "a { opacity: 0.5; }",
			want:    []expect{{1, 14, `found "0.5"`}},
		},
		{
			name:    "no leading zero",
			rule:    "leading-zero",
			content: "a { opacity: .5; width: 10.5px; }",
		},
		{
			name:    "keyword font weight",
			rule:    "require-number",
			content: "a { font-weight: bold; line-height: 1.5; }",
			want:    []expect{{1, 18, `The value of "font-weight" must be a number, found "bold".`}},
		},
		{
			name:    "global keyword allowed",
			rule:    "require-number",
			value:   []any{"font-weight"},
			content: "a { font-weight: inherit; }",
		},
		{
			name:    "font size below minimum",
			rule:    "min-font-size",
			value:   12,
			content: "a { font-size: 10px; }\nb { font-size: 14px; }",
			want:    []expect{{1, 16, "must not be smaller than 12px"}},
		},
		{
			name:    "too many floats",
			rule:    "floats",
			value:   1,
			content: "a { float: left; }\nb { float: right; }\nc { float: none; }",
			want:    []expect{{2, 5, "Too many floats (2, at most 1 allowed)"}},
		},
		{
			name:    "too many web fonts",
			rule:    "font-face",
			value:   1,
			content: "@font-face { font-family: a; }\n@font-face { font-family: b; }",
			want:    []expect{{2, 1, "Too many web fonts (2, at most 1 allowed)."}},
		},
		{
			name:    "too many font sizes",
			rule:    "font-sizes",
			value:   1,
			content: "a { font-size: 1em; }\nb { font-size: 2em; }",
			want:    []expect{{2, 5, "Too many font-size declarations (2, at most 1 allowed)"}},
		},
		{
			name:    "negative text indent",
			rule:    "text-indent",
			content: "a { text-indent: -9999px; }",
			want:    []expect{{1, 5, "Negative text-indent doesn't work well with RTL."}},
		},
		{
			name:    "negative text indent with ltr",
			rule:    "text-indent",
			content: "a { text-indent: -9999px; direction: ltr; }",
		},
	})
}

func TestParseValue(t *testing.T) {
	toks := ParseValue("1px solid rgba(0, 0, 0, .5) #fff 50%")

	kinds := make([]ValueKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []ValueKind{
		KindLength, KindIdent, KindFunction,
		KindNumber, KindOperator, KindNumber, KindOperator, KindNumber, KindOperator, KindNumber,
		KindOperator, KindColor, KindPercentage,
	}, kinds)

	assert.Equal(t, "rgba", toks[2].FunctionName())
	assert.Equal(t, 10, toks[2].Offset)
	assert.Equal(t, 1, toks[3].Depth)
	assert.Equal(t, 0, toks[11].Depth)

	n, unit, ok := toks[0].Number()
	require.True(t, ok)
	assert.Equal(t, 1.0, n)
	assert.Equal(t, "px", unit)

	_, _, ok = toks[1].Number()
	assert.False(t, ok)
}

func TestVendorPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		base   string
	}{
		{"-webkit-transition", "-webkit-", "transition"},
		{"-MOZ-box-sizing", "-moz-", "box-sizing"},
		{"transition", "", "transition"},
		{"--custom", "", "--custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, base := vendorPrefix(tt.name)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.base, base)
		})
	}
}
