package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/platinummonkey/csshint/pkg/css"
	"github.com/platinummonkey/csshint/pkg/linter"
)

var hexDigits = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// eachHexColor calls fn for every #hex token in the declaration's value.
func eachHexColor(decl *css.Declaration, fn func(tok ValueToken)) {
	for _, tok := range ParseValue(decl.Value) {
		if tok.Kind == KindColor {
			fn(tok)
		}
	}
}

// DisallowNamedColorRule reports color keywords such as "red"
type DisallowNamedColorRule struct {
	BaseRule
}

// NewDisallowNamedColorRule creates a new named color rule
func NewDisallowNamedColorRule() *DisallowNamedColorRule {
	return &DisallowNamedColorRule{BaseRule{
		RuleName:        "disallow-named-color",
		RuleDescription: "Disallow named colors",
		RuleDefault:     true,
	}}
}

func (r *DisallowNamedColorRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			if !colorProperties[unhack(decl.Prop())] {
				return
			}
			for _, tok := range ParseValue(decl.Value) {
				if tok.Kind == KindIdent && tok.Depth == 0 && namedColors[strings.ToLower(tok.Text)] {
					rep.at(decl.ValueAt(tok.Offset), tok.Text,
						fmt.Sprintf("Color value must not be a named color, found %q.", tok.Text))
				}
			}
		})
	}
}

// HexColorRule requires hex colors to be well formed and abbreviated when
// possible
type HexColorRule struct {
	BaseRule
}

// NewHexColorRule creates a new hex color rule
func NewHexColorRule() *HexColorRule {
	return &HexColorRule{BaseRule{
		RuleName:        "hex-color",
		RuleDescription: "Require valid hex colors in their short form when possible",
		RuleDefault:     true,
	}}
}

func (r *HexColorRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			eachHexColor(decl, func(tok ValueToken) {
				digits := tok.Text[1:]
				pos := decl.ValueAt(tok.Offset)
				switch {
				case !hexDigits.MatchString(digits) || (len(digits) != 3 && len(digits) != 4 && len(digits) != 6 && len(digits) != 8):
					rep.at(pos, tok.Text, fmt.Sprintf("Invalid hex color %q.", tok.Text))
				case len(digits) == 6 && abbreviable(digits):
					short := "#" + digits[0:1] + digits[2:3] + digits[4:5]
					rep.at(pos, tok.Text, fmt.Sprintf("Color %q must be abbreviated as %q.", tok.Text, short))
				}
			})
		})
	}
}

func abbreviable(digits string) bool {
	d := strings.ToLower(digits)
	return d[0] == d[1] && d[2] == d[3] && d[4] == d[5]
}

// UnifyingColorCaseRule requires every hex color of a file to use the case
// of the first one
type UnifyingColorCaseRule struct {
	BaseRule
}

// NewUnifyingColorCaseRule creates a new color case rule
func NewUnifyingColorCaseRule() *UnifyingColorCaseRule {
	return &UnifyingColorCaseRule{BaseRule{
		RuleName:        "unifying-color-case-sensitive",
		RuleDescription: "Hex colors must use the same letter case throughout a file",
		RuleDefault:     true,
	}}
}

func hexCase(s string) linter.HexCase {
	lower, upper := strings.ToLower(s), strings.ToUpper(s)
	switch {
	case lower == upper:
		return linter.HexCaseUnset
	case s == lower:
		return linter.HexCaseLower
	case s == upper:
		return linter.HexCaseUpper
	default:
		return -1
	}
}

func (r *UnifyingColorCaseRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	check := opts.Context
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			eachHexColor(decl, func(tok ValueToken) {
				c := hexCase(tok.Text[1:])
				if c == linter.HexCaseUnset {
					return
				}
				if check.HexColorCase == linter.HexCaseUnset && c != -1 {
					check.HexColorCase = c
					return
				}
				if c != check.HexColorCase {
					want := "lowercase"
					if check.HexColorCase == linter.HexCaseUpper {
						want = "uppercase"
					}
					if check.HexColorCase == linter.HexCaseUnset {
						want = "a single case"
					}
					rep.at(decl.ValueAt(tok.Offset), tok.Text,
						fmt.Sprintf("Color %q must be written in %s like the first color of the file.", tok.Text, want))
				}
			})
		})
	}
}

// FallbackColorsRule requires a plain color before rgba(), hsl() and hsla()
// values of the same property
type FallbackColorsRule struct {
	BaseRule
}

// NewFallbackColorsRule creates a new fallback colors rule
func NewFallbackColorsRule() *FallbackColorsRule {
	return &FallbackColorsRule{BaseRule{
		RuleName:        "fallback-colors",
		RuleDescription: "Require fallback colors before rgba, hsl and hsla",
		RuleDefault:     true,
	}}
}

var modernColorFunctions = setOf("rgba hsl hsla")

func usesModernColor(value string) (ValueToken, bool) {
	for _, tok := range ParseValue(value) {
		if tok.Kind == KindFunction && modernColorFunctions[tok.FunctionName()] {
			return tok, true
		}
	}
	return ValueToken{}, false
}

func (r *FallbackColorsRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	fallbackProps := setOf("color background background-color")

	checkBlock := func(decls []*css.Declaration) {
		var lastProp string
		var lastModern bool
		for _, decl := range decls {
			prop := decl.Prop()
			if !fallbackProps[prop] {
				lastProp = prop
				continue
			}
			tok, modern := usesModernColor(decl.Value)
			if modern && (lastProp != prop || lastModern) {
				rep.at(decl.ValueAt(tok.Offset), tok.Text,
					fmt.Sprintf("Fallback %s (hex or RGB) should precede %s %s.", prop, tok.FunctionName(), prop))
			}
			lastProp, lastModern = prop, modern
		}
	}

	return func(root *css.Root) {
		eachBlock(root, rep, checkBlock)
	}
}
