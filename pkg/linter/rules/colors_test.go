package rules

import (
	"testing"
)

func TestColorRules(t *testing.T) {
	runCases(t, []ruleCase{
		{
			name:    "named color",
			rule:    "disallow-named-color",
			content: "a { color: red; }",
			want:    []expect{{1, 12, `found "red"`}},
		},
		{
			name:    "named color inside shorthand",
			rule:    "disallow-named-color",
			content: "a { border: 1px solid Red; }",
			want:    []expect{{1, 23, `found "Red"`}},
		},
		{
			name:    "keyword outside color properties",
			rule:    "disallow-named-color",
			content: "a { display: block; }",
		},
		{
			name:    "abbreviable hex color",
			rule:    "hex-color",
			content: "a { color: #ffffff; }",
			want:    []expect{{1, 12, `must be abbreviated as "#fff"`}},
		},
		{
			name:    "invalid hex color",
			rule:    "hex-color",
			content: "a { color: #ggg; }",
			want:    []expect{{1, 12, `Invalid hex color "#ggg".`}},
		},
		{
			name:    "valid hex colors",
			rule:    "hex-color",
			content: "a { color: #abcdef; background: #abcd; }",
		},
		{
			name:    "hex color case differs from the first",
			rule:    "unifying-color-case-sensitive",
			content: "a { color: #fff; }\nb { color: #FFF; }\nc { color: #000; }",
			want:    []expect{{2, 12, "must be written in lowercase"}},
		},
		{
			name:    "rgba without fallback",
			rule:    "fallback-colors",
			content: "a { color: rgba(0, 0, 0, .5); }",
			want:    []expect{{1, 12, "Fallback color (hex or RGB) should precede rgba color."}},
		},
		{
			name:    "rgba with fallback",
			rule:    "fallback-colors",
			content: "a { color: #000; color: rgba(0, 0, 0, .5); }",
		},
	})
}
