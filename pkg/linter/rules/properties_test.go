package rules

import (
	"testing"
)

func TestPropertyRules(t *testing.T) {
	runCases(t, []ruleCase{
		{
			name:    "width with padding",
			rule:    "box-model",
			content: "a { width: 100px; padding: 10px; }",
			want:    []expect{{1, 19, "Using width with padding"}},
		},
		{
			name:    "width with padding and box sizing",
			rule:    "box-model",
			content: "a { width: 100px; padding: 10px; box-sizing: border-box; }",
		},
		{
			name:    "box sizing",
			rule:    "box-sizing",
			content: "a { box-sizing: border-box; }",
			want:    []expect{{1, 5, "box-sizing property isn't supported"}},
		},
		{
			name:    "missing vendor variants",
			rule:    "compatible-vendor-prefixes",
			content: "a { -webkit-transition: color 1s; }",
			want:    []expect{{1, 5, "-moz-transition, -o-transition"}},
		},
		{
			name:    "prefixed property after standard",
			rule:    "vendor-prefixes-sort",
			content: "a { transition: none; -webkit-transition: none; }",
			want:    []expect{{1, 23, `"-webkit-transition" must be placed before "transition".`}},
		},
		{
			name:    "aligned variants",
			rule:    "vendor-prefixes-sort",
			content: "a {\n    -webkit-transition: none;\n            transition: none;\n}",
		},
		{
			name:    "misaligned variants",
			rule:    "vendor-prefixes-sort",
			content: "a {\n    -webkit-transition: none;\n    transition: none;\n}",
			want:    []expect{{3, 15, `The colon of "transition" must be aligned`}},
		},
		{
			name:    "width on inline element",
			rule:    "display-property-grouping",
			content: "a { display: inline; width: 10px; }",
			want:    []expect{{1, 22, "width can't be used with display: inline."}},
		},
		{
			name:    "same value twice",
			rule:    "duplicate-properties",
			content: "a { color: red; color: red; }",
			want:    []expect{{1, 17, `Duplicate property "color" found.`}},
		},
		{
			name:    "consecutive fallback",
			rule:    "duplicate-properties",
			content: "a { color: #000; color: rgba(0, 0, 0, .5); }",
		},
		{
			name:    "non consecutive duplicate",
			rule:    "duplicate-properties",
			content: "a { color: red; float: left; color: blue; }",
			want:    []expect{{1, 30, `Duplicate property "color" found.`}},
		},
		{
			name:    "empty rules",
			rule:    "empty-rules",
			content: "a {}\nb { /* note */ }\nc { color: red; }",
			want: []expect{
				{1, 1, "Rules without any properties specified should be removed."},
				{2, 1, "Rules without any properties specified should be removed."},
			},
		},
		{
			name:    "import",
			rule:    "import",
			content: "@import url(a.css);",
			want:    []expect{{1, 1, "@import prevents parallel downloads"}},
		},
		{
			name:    "outline removed outside focus",
			rule:    "outline-none",
			content: "a { outline: none; }",
			want:    []expect{{1, 5, "Outlines should only be modified using :focus."}},
		},
		{
			name:    "outline removed without replacement",
			rule:    "outline-none",
			content: "a:focus { outline: 0; }",
			want:    []expect{{1, 11, "Outlines shouldn't be hidden unless other visual changes are made."}},
		},
		{
			name:    "outline replaced under focus",
			rule:    "outline-none",
			content: "a:focus { outline: none; border: 1px solid; }",
		},
		{
			name:    "unknown property",
			rule:    "property-not-existed",
			content: "a { colr: red; -webkit-foo: 1; --x: 1; color: red; }",
			want:    []expect{{1, 5, `Property "colr" is not a known CSS property.`}},
		},
		{
			name:    "all longhands without shorthand",
			rule:    "shorthand",
			content: "a { margin-top: 0; margin-right: 0; margin-bottom: 0; margin-left: 0; }",
			want:    []expect{{1, 5, `can be replaced by the "margin" shorthand.`}},
		},
		{
			name:    "longhands not enabled",
			rule:    "shorthand",
			value:   []any{"padding"},
			content: "a { margin-top: 0; margin-right: 0; margin-bottom: 0; margin-left: 0; }",
		},
		{
			name:    "star hack",
			rule:    "star-property-hack",
			content: "a { *color: red; }",
			want:    []expect{{1, 5, `uses the "*" hack.`}},
		},
		{
			name:    "underscore hack",
			rule:    "underscore-property-hack",
			content: "a { _color: red; }",
			want:    []expect{{1, 5, `uses the "_" hack.`}},
		},
	})
}
