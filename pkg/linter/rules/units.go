package rules

import (
	"fmt"
	"strings"

	"github.com/platinummonkey/csshint/pkg/css"
	"github.com/platinummonkey/csshint/pkg/linter"
)

var lengthUnits = setOf("px em rem ex ch vw vh vmin vmax cm mm in pt pc q")

// ZeroUnitRule reports lengths of zero written with a unit
type ZeroUnitRule struct {
	BaseRule
}

// NewZeroUnitRule creates a new zero unit rule
func NewZeroUnitRule() *ZeroUnitRule {
	return &ZeroUnitRule{BaseRule{
		RuleName:        "zero-unit",
		RuleDescription: "Disallow units on zero lengths",
		RuleDefault:     true,
	}}
}

func (r *ZeroUnitRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			for _, tok := range ParseValue(decl.Value) {
				if tok.Kind != KindLength {
					continue
				}
				n, unit, ok := tok.Number()
				if ok && n == 0 && lengthUnits[unit] {
					rep.at(decl.ValueAt(tok.Offset), tok.Text,
						fmt.Sprintf("Values of 0 shouldn't have units specified, found %q.", tok.Text))
				}
			}
		})
	}
}

// LeadingZeroRule reports fractional numbers written with a leading zero
type LeadingZeroRule struct {
	BaseRule
}

// NewLeadingZeroRule creates a new leading zero rule
func NewLeadingZeroRule() *LeadingZeroRule {
	return &LeadingZeroRule{BaseRule{
		RuleName:        "leading-zero",
		RuleDescription: "Omit the leading zero of fractional numbers",
		RuleDefault:     true,
	}}
}

func (r *LeadingZeroRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			for _, tok := range ParseValue(decl.Value) {
				if _, _, ok := tok.Number(); !ok {
					continue
				}
				text := strings.TrimLeft(tok.Text, "+-")
				if strings.HasPrefix(text, "0.") {
					rep.at(decl.ValueAt(tok.Offset), tok.Text,
						fmt.Sprintf("When the value is between 0 and 1, the leading 0 must be omitted, found %q.", tok.Text))
				}
			}
		})
	}
}

// RequireNumberRule requires plain numbers for the configured properties
type RequireNumberRule struct {
	BaseRule
}

// NewRequireNumberRule creates a new require number rule
func NewRequireNumberRule() *RequireNumberRule {
	return &RequireNumberRule{BaseRule{
		RuleName:        "require-number",
		RuleDescription: "Require numeric values for the given properties",
		RuleDefault:     []any{"font-weight", "line-height"},
	}}
}

var globalKeywords = setOf("inherit initial unset revert")

func (r *RequireNumberRule) Install(opts linter.Options) linter.Visitor {
	props := stringSet(opts.Value, []string{"font-weight", "line-height"})
	if len(props) == 0 {
		return nil
	}
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			if !props[decl.Prop()] || globalKeywords[strings.ToLower(decl.Value)] {
				return
			}
			toks := ParseValue(decl.Value)
			if len(toks) == 1 && toks[0].Kind == KindNumber {
				return
			}
			rep.at(decl.ValueAt(0), decl.Value,
				fmt.Sprintf("The value of %q must be a number, found %q.", decl.Property, decl.Value))
		})
	}
}

// MinFontSizeRule reports pixel font sizes below a minimum
type MinFontSizeRule struct {
	BaseRule
}

// NewMinFontSizeRule creates a new min font size rule
func NewMinFontSizeRule() *MinFontSizeRule {
	return &MinFontSizeRule{BaseRule{
		RuleName:        "min-font-size",
		RuleDescription: "Disallow pixel font sizes below the given value",
		RuleDefault:     12,
	}}
}

func (r *MinFontSizeRule) Install(opts linter.Options) linter.Visitor {
	limit, ok := positiveInt(opts.Value)
	if !ok {
		return nil
	}
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			prop := decl.Prop()
			if prop != "font-size" && prop != "font" {
				return
			}
			for _, tok := range ParseValue(decl.Value) {
				n, unit, ok := tok.Number()
				if ok && unit == "px" && tok.Depth == 0 && n < float64(limit) {
					rep.at(decl.ValueAt(tok.Offset), tok.Text,
						fmt.Sprintf("font-size must not be smaller than %dpx, found %q.", limit, tok.Text))
					return
				}
			}
		})
	}
}

// countRule reports once a declaration or at-rule appears more often than
// the configured limit
type countRule struct {
	BaseRule
	message string
	match   func(n css.Node) bool
}

func (r *countRule) Install(opts linter.Options) linter.Visitor {
	limit, ok := positiveInt(opts.Value)
	if !ok {
		return nil
	}
	rep := r.reporter(opts)
	return func(root *css.Root) {
		count := 0
		var first css.Node
		css.Walk(root, func(n css.Node) bool {
			if r.match(n) {
				count++
				if count == limit+1 {
					first = n
				}
			}
			return true
		})
		if first != nil {
			rep.at(first.Span().Start, "", fmt.Sprintf(r.message, count, limit))
		}
	}
}

// NewFloatsRule limits the number of float declarations
func NewFloatsRule() Rule {
	return &countRule{
		BaseRule: BaseRule{
			RuleName:        "floats",
			RuleDescription: "Limit the number of floats",
			RuleDefault:     10,
		},
		message: "Too many floats (%d, at most %d allowed), you're probably using them for layout. Consider using a grid system instead.",
		match: func(n css.Node) bool {
			d, ok := n.(*css.Declaration)
			return ok && d.Prop() == "float" && !strings.EqualFold(d.Value, "none")
		},
	}
}

// NewFontFaceRule limits the number of @font-face declarations
func NewFontFaceRule() Rule {
	return &countRule{
		BaseRule: BaseRule{
			RuleName:        "font-face",
			RuleDescription: "Limit the number of web fonts",
			RuleDefault:     5,
		},
		message: "Too many web fonts (%d, at most %d allowed).",
		match: func(n css.Node) bool {
			a, ok := n.(*css.AtRule)
			return ok && a.Name == "font-face"
		},
	}
}

// NewFontSizesRule limits the number of font-size declarations
func NewFontSizesRule() Rule {
	return &countRule{
		BaseRule: BaseRule{
			RuleName:        "font-sizes",
			RuleDescription: "Limit the number of font-size declarations",
			RuleDefault:     10,
		},
		message: "Too many font-size declarations (%d, at most %d allowed), abstraction needed.",
		match: func(n css.Node) bool {
			d, ok := n.(*css.Declaration)
			return ok && d.Prop() == "font-size"
		},
	}
}

// TextIndentRule reports large negative text-indent without direction: ltr
type TextIndentRule struct {
	BaseRule
}

// NewTextIndentRule creates a new text indent rule
func NewTextIndentRule() *TextIndentRule {
	return &TextIndentRule{BaseRule{
		RuleName:        "text-indent",
		RuleDescription: "Require direction: ltr with negative text-indent",
		RuleDefault:     true,
	}}
}

func (r *TextIndentRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachBlock(root, rep, func(decls []*css.Declaration) {
			var indent *css.Declaration
			ltr := false
			for _, decl := range decls {
				switch decl.Prop() {
				case "text-indent":
					toks := ParseValue(decl.Value)
					if len(toks) > 0 {
						if n, _, ok := toks[0].Number(); ok && n <= -99 {
							indent = decl
						}
					}
				case "direction":
					ltr = strings.EqualFold(decl.Value, "ltr")
				}
			}
			if indent != nil && !ltr {
				rep.at(indent.Span().Start, indent.Value,
					"Negative text-indent doesn't work well with RTL. If you use text-indent for image replacement explicitly set direction for that item to ltr.")
			}
		})
	}
}

// eachBlock calls fn with the declarations of every rule and at-rule block.
func eachBlock(root *css.Root, rep *reporter, fn func(decls []*css.Declaration)) {
	css.Walk(root, func(n css.Node) bool {
		switch node := n.(type) {
		case *css.Rule:
			fn(node.Declarations())
		case *css.AtRule:
			if node.HasBlock {
				fn(node.Declarations())
			}
		}
		return !rep.done()
	})
}
