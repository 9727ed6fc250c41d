package rules

import (
	"fmt"
	"strings"

	"github.com/platinummonkey/csshint/pkg/css"
	"github.com/platinummonkey/csshint/pkg/linter"
)

// urlArgument returns the argument of a url() token without quotes, and
// the quote character it was written with.
func urlArgument(tok ValueToken) (string, byte) {
	arg := tok.Text
	if i := strings.IndexByte(arg, '('); i >= 0 {
		arg = arg[i+1:]
	}
	arg = strings.TrimSpace(strings.TrimSuffix(arg, ")"))
	if len(arg) >= 2 && (arg[0] == '"' || arg[0] == '\'') && arg[len(arg)-1] == arg[0] {
		return arg[1 : len(arg)-1], arg[0]
	}
	return arg, 0
}

// eachURL calls fn for every url() in the declaration's value.
func eachURL(decl *css.Declaration, fn func(tok ValueToken)) {
	toks := ParseValue(decl.Value)
	for i, tok := range toks {
		switch {
		case tok.Kind == KindURL:
			fn(tok)
		case tok.Kind == KindFunction && tok.FunctionName() == "url" && i+1 < len(toks):
			if arg := toks[i+1]; arg.Kind == KindString {
				fn(ValueToken{Kind: KindURL, Text: "url(" + arg.Text + ")", Offset: tok.Offset})
			}
		}
	}
}

// DisallowImportantRule reports !important. Each line is reported once.
type DisallowImportantRule struct {
	BaseRule
}

// NewDisallowImportantRule creates a new disallow important rule
func NewDisallowImportantRule() *DisallowImportantRule {
	return &DisallowImportantRule{BaseRule{
		RuleName:        "disallow-important",
		RuleDescription: "Disallow !important",
		RuleDefault:     true,
	}}
}

func (r *DisallowImportantRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			if !decl.Important {
				return
			}
			bang := decl.Span().End.Offset + 1 - len(decl.ImportantRaw)
			rep.oncePerLine(decl.At(bang), decl.ImportantRaw, "Avoid using !important.")
		})
	}
}

// DisallowExpressionRule reports IE expression() values
type DisallowExpressionRule struct {
	BaseRule
}

// NewDisallowExpressionRule creates a new disallow expression rule
func NewDisallowExpressionRule() *DisallowExpressionRule {
	return &DisallowExpressionRule{BaseRule{
		RuleName:        "disallow-expression",
		RuleDescription: "Disallow CSS expressions",
		RuleDefault:     true,
	}}
}

func (r *DisallowExpressionRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			for _, tok := range ParseValue(decl.Value) {
				if tok.Kind == KindFunction && tok.FunctionName() == "expression" {
					rep.at(decl.ValueAt(tok.Offset), tok.Text, "Expression must not be used.")
				}
			}
		})
	}
}

// DisallowQuotesInURLRule reports quoted url() arguments
type DisallowQuotesInURLRule struct {
	BaseRule
}

// NewDisallowQuotesInURLRule creates a new disallow quotes in url rule
func NewDisallowQuotesInURLRule() *DisallowQuotesInURLRule {
	return &DisallowQuotesInURLRule{BaseRule{
		RuleName:        "disallow-quotes-in-url",
		RuleDescription: "Disallow quotes around url() arguments",
		RuleDefault:     true,
	}}
}

func (r *DisallowQuotesInURLRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			eachURL(decl, func(tok ValueToken) {
				if _, quote := urlArgument(tok); quote != 0 {
					rep.at(decl.ValueAt(tok.Offset), tok.Text, "Path in the url() must not be quoted.")
				}
			})
		})
	}
}

// OmitProtocolInURLRule reports url() arguments starting with http: or https:
type OmitProtocolInURLRule struct {
	BaseRule
}

// NewOmitProtocolInURLRule creates a new omit protocol rule
func NewOmitProtocolInURLRule() *OmitProtocolInURLRule {
	return &OmitProtocolInURLRule{BaseRule{
		RuleName:        "omit-protocol-in-url",
		RuleDescription: "Omit the protocol of absolute URLs",
		RuleDefault:     true,
	}}
}

func (r *OmitProtocolInURLRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			eachURL(decl, func(tok ValueToken) {
				arg, _ := urlArgument(tok)
				lower := strings.ToLower(arg)
				if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
					rep.at(decl.ValueAt(tok.Offset), tok.Text,
						fmt.Sprintf("Protocol must be omitted in url(), found %q.", arg))
				}
			})
		})
	}
}

// RequireDoubleQuotesRule requires strings to use double quotes
type RequireDoubleQuotesRule struct {
	BaseRule
}

// NewRequireDoubleQuotesRule creates a new require double quotes rule
func NewRequireDoubleQuotesRule() *RequireDoubleQuotesRule {
	return &RequireDoubleQuotesRule{BaseRule{
		RuleName:        "require-doublequotes",
		RuleDescription: "Require double quotes for strings",
		RuleDefault:     true,
	}}
}

const doubleQuotesMessage = "Strings must use double quotes."

func (r *RequireDoubleQuotesRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.Walk(root, func(n css.Node) bool {
			switch node := n.(type) {
			case *css.Declaration:
				for _, tok := range ParseValue(node.Value) {
					if tok.Kind == KindString && strings.HasPrefix(tok.Text, "'") {
						rep.at(node.ValueAt(tok.Offset), tok.Text, doubleQuotesMessage)
					}
					if tok.Kind == KindURL {
						if _, quote := urlArgument(tok); quote == '\'' {
							rep.at(node.ValueAt(tok.Offset), tok.Text, doubleQuotesMessage)
						}
					}
				}
			case *css.AtRule:
				for _, tok := range ParseValue(node.Params) {
					if tok.Kind == KindString && strings.HasPrefix(tok.Text, "'") {
						rep.at(node.ParamsAt(tok.Offset), tok.Text, doubleQuotesMessage)
					}
				}
			case *css.Rule:
				toks, _ := css.Tokenize(node.Selector)
				for _, tok := range toks {
					if tok.Type == css.StringToken && strings.HasPrefix(tok.Text, "'") {
						rep.at(node.SelectorAt(tok.Offset), tok.Text, doubleQuotesMessage)
					}
				}
			}
			return !rep.done()
		})
	}
}

// RequireTransitionPropertyRule requires transitions to name the
// properties they animate instead of "all"
type RequireTransitionPropertyRule struct {
	BaseRule
}

// NewRequireTransitionPropertyRule creates a new transition property rule
func NewRequireTransitionPropertyRule() *RequireTransitionPropertyRule {
	return &RequireTransitionPropertyRule{BaseRule{
		RuleName:        "require-transition-property",
		RuleDescription: `Disallow "all" as the transitioned property`,
		RuleDefault:     true,
	}}
}

func (r *RequireTransitionPropertyRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			_, base := vendorPrefix(unhack(decl.Prop()))
			if base != "transition" && base != "transition-property" {
				return
			}
			for _, tok := range ParseValue(decl.Value) {
				if tok.Kind == KindIdent && tok.Depth == 0 && strings.EqualFold(tok.Text, "all") {
					rep.at(decl.ValueAt(tok.Offset), tok.Text,
						fmt.Sprintf("%s must name the transitioned property instead of %q.", decl.Property, tok.Text))
				}
			}
		})
	}
}

// HorizontalVerticalPositionRule requires background-position to state
// both a horizontal and a vertical component
type HorizontalVerticalPositionRule struct {
	BaseRule
}

// NewHorizontalVerticalPositionRule creates a new position rule
func NewHorizontalVerticalPositionRule() *HorizontalVerticalPositionRule {
	return &HorizontalVerticalPositionRule{BaseRule{
		RuleName:        "horizontal-vertical-position",
		RuleDescription: "Require both components in background-position",
		RuleDefault:     true,
	}}
}

func (r *HorizontalVerticalPositionRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			if unhack(decl.Prop()) != "background-position" || globalKeywords[strings.ToLower(decl.Value)] {
				return
			}
			for _, part := range splitTopLevel(decl.Value, ',') {
				if part.text == "" {
					continue
				}
				if topLevelItems(ParseValue(part.text)) == 1 {
					rep.at(decl.ValueAt(part.offset), part.text,
						fmt.Sprintf("background-position must specify both horizontal and vertical positions, found %q.", part.text))
				}
			}
		})
	}
}

// GradientsRule requires the -webkit- variant of gradient values
type GradientsRule struct {
	BaseRule
}

// NewGradientsRule creates a new gradients rule
func NewGradientsRule() *GradientsRule {
	return &GradientsRule{BaseRule{
		RuleName:        "gradients",
		RuleDescription: "Require vendor prefixed gradients alongside standard ones",
		RuleDefault:     true,
	}}
}

var gradientFunctions = setOf("linear-gradient radial-gradient repeating-linear-gradient repeating-radial-gradient")

func (r *GradientsRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachBlock(root, rep, func(decls []*css.Declaration) {
			var standard *css.Declaration
			var standardTok ValueToken
			webkit := false
			for _, decl := range decls {
				for _, tok := range ParseValue(decl.Value) {
					if tok.Kind != KindFunction {
						continue
					}
					prefix, base := vendorPrefix(tok.FunctionName())
					if !gradientFunctions[base] && base != "gradient" {
						continue
					}
					switch {
					case prefix == "-webkit-":
						webkit = true
					case prefix == "" && standard == nil:
						standard, standardTok = decl, tok
					}
				}
			}
			if standard != nil && !webkit {
				rep.at(standard.ValueAt(standardTok.Offset), standardTok.Text,
					fmt.Sprintf("Missing -webkit- prefixed variant of %s).", standardTok.Text))
			}
		})
	}
}

// UnifyingFontFamilyCaseRule requires a font family to be spelled with the
// same letter case throughout a file
type UnifyingFontFamilyCaseRule struct {
	BaseRule
}

// NewUnifyingFontFamilyCaseRule creates a new font family case rule
func NewUnifyingFontFamilyCaseRule() *UnifyingFontFamilyCaseRule {
	return &UnifyingFontFamilyCaseRule{BaseRule{
		RuleName:        "unifying-font-family-case-sensitive",
		RuleDescription: "Font family names must use the same letter case throughout a file",
		RuleDefault:     true,
	}}
}

// fontFamilies returns the family names of a font-family value with their
// offsets.
func fontFamilies(value string) []listPart {
	var out []listPart
	for _, part := range splitTopLevel(value, ',') {
		text := part.text
		if text == "" {
			continue
		}
		if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0] {
			part.text = text[1 : len(text)-1]
			part.offset++
		}
		out = append(out, part)
	}
	return out
}

func (r *UnifyingFontFamilyCaseRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	check := opts.Context
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			if unhack(decl.Prop()) != "font-family" {
				return
			}
			for _, family := range fontFamilies(decl.Value) {
				key := strings.ToLower(family.text)
				first, seen := check.FontFamilies[key]
				if !seen {
					check.FontFamilies[key] = family.text
					continue
				}
				if first != family.text {
					rep.at(decl.ValueAt(family.offset), family.text,
						fmt.Sprintf("Font family %q must be written as %q like its first use in the file.", family.text, first))
				}
			}
		})
	}
}
