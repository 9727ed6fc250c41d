package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/platinummonkey/csshint/pkg/css"
	"github.com/platinummonkey/csshint/pkg/linter"
)

// colonOffset returns the absolute offset of a declaration's colon.
func colonOffset(decl *css.Declaration) int {
	return decl.Span().Start.Offset + len(decl.Property) + len(decl.BetweenBeforeColon)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\f'
}

// extraSpace reports whether ws is more than a single space on one line.
func extraSpace(ws string) bool {
	return ws != " " && !strings.Contains(ws, "\n")
}

// RequireAfterSpaceRule requires whitespace after ":" in declarations and
// after "," in selector lists and values
type RequireAfterSpaceRule struct {
	BaseRule
}

// NewRequireAfterSpaceRule creates a new require after space rule
func NewRequireAfterSpaceRule() *RequireAfterSpaceRule {
	return &RequireAfterSpaceRule{BaseRule{
		RuleName:        "require-after-space",
		RuleDescription: `Require a space after ":" and ","`,
		RuleDefault:     []any{":", ","},
	}}
}

func (r *RequireAfterSpaceRule) Install(opts linter.Options) linter.Visitor {
	chars := stringSet(opts.Value, []string{":", ","})
	if len(chars) == 0 {
		return nil
	}
	rep := r.reporter(opts)
	return func(root *css.Root) {
		if chars[":"] {
			css.WalkDecls(root, func(decl *css.Declaration) {
				switch {
				case decl.Value == "":
				case decl.BetweenAfterColon == "":
					rep.at(decl.At(colonOffset(decl)), ":", `Must contain spaces after ":".`)
				case extraSpace(decl.BetweenAfterColon):
					rep.at(decl.At(colonOffset(decl)), ":", `Must contain only one space after ":".`)
				}
			})
		}
		if !chars[","] {
			return
		}
		eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
			for _, sel := range selectors {
				next := sel.Comma + 1
				if sel.Comma >= 0 && next < len(rule.Selector) && !isSpace(rule.Selector[next]) {
					rep.at(rule.SelectorAt(sel.Comma), ",", `Must contain spaces after "," in selectors.`)
				}
			}
		})
		css.WalkDecls(root, func(decl *css.Declaration) {
			toks, _ := css.Tokenize(decl.Value)
			for i, tok := range toks {
				if tok.Type == css.CommaToken && i+1 < len(toks) && toks[i+1].Type != css.WhitespaceToken {
					rep.at(decl.ValueAt(tok.Offset), ",", `Must contain spaces after "," in values.`)
				}
			}
		})
	}
}

// RequireAroundSpaceRule requires whitespace around selector combinators
type RequireAroundSpaceRule struct {
	BaseRule
}

// NewRequireAroundSpaceRule creates a new require around space rule
func NewRequireAroundSpaceRule() *RequireAroundSpaceRule {
	return &RequireAroundSpaceRule{BaseRule{
		RuleName:        "require-around-space",
		RuleDescription: "Require spaces around selector combinators",
		RuleDefault:     []any{">", "+", "~"},
	}}
}

func (r *RequireAroundSpaceRule) Install(opts linter.Options) linter.Visitor {
	chars := stringSet(opts.Value, []string{">", "+", "~"})
	if len(chars) == 0 {
		return nil
	}
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
			for _, sel := range selectors {
				for _, c := range sel.Combinators {
					if chars[c.Text] && (!c.SpaceBefore || !c.SpaceAfter) {
						rep.at(rule.SelectorAt(c.Offset), c.Text,
							fmt.Sprintf("Must contain spaces before and after %q.", c.Text))
					}
				}
			}
		})
	}
}

// RequireBeforeSpaceRule requires whitespace before "{"
type RequireBeforeSpaceRule struct {
	BaseRule
}

// NewRequireBeforeSpaceRule creates a new require before space rule
func NewRequireBeforeSpaceRule() *RequireBeforeSpaceRule {
	return &RequireBeforeSpaceRule{BaseRule{
		RuleName:        "require-before-space",
		RuleDescription: `Require a space before "{"`,
		RuleDefault:     []any{"{"},
	}}
}

func (r *RequireBeforeSpaceRule) Install(opts linter.Options) linter.Visitor {
	if !stringSet(opts.Value, []string{"{"})["{"] {
		return nil
	}
	rep := r.reporter(opts)
	check := func(between string, pos css.Position) {
		switch {
		case between == "":
			rep.at(pos, "{", `Must contain spaces before "{".`)
		case extraSpace(between):
			rep.at(pos, "{", `Must contain only one space before "{".`)
		}
	}
	return func(root *css.Root) {
		css.Walk(root, func(n css.Node) bool {
			switch node := n.(type) {
			case *css.Rule:
				if node.Selector != "" {
					check(node.Between, node.SelectorAt(len(node.Selector)))
				}
			case *css.AtRule:
				if !node.HasBlock {
					break
				}
				if node.Params == "" {
					check(node.Between, node.At(node.Span().Start.Offset+1+len(node.Name)))
				} else {
					check(node.Between, node.ParamsAt(len(node.Params)))
				}
			}
			return !rep.done()
		})
	}
}

// RequireNewlineRule requires selectors, properties and media query
// conditions to start on their own line
type RequireNewlineRule struct {
	BaseRule
}

// NewRequireNewlineRule creates a new require newline rule
func NewRequireNewlineRule() *RequireNewlineRule {
	return &RequireNewlineRule{BaseRule{
		RuleName:        "require-newline",
		RuleDescription: "Require selectors, properties and media query conditions on their own line",
		RuleDefault:     []any{"selector", "property", "media-query-condition"},
	}}
}

func (r *RequireNewlineRule) Install(opts linter.Options) linter.Visitor {
	kinds := stringSet(opts.Value, []string{"selector", "property", "media-query-condition"})
	if len(kinds) == 0 {
		return nil
	}
	rep := r.reporter(opts)
	return func(root *css.Root) {
		if kinds["selector"] {
			eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
				for i := 1; i < len(selectors); i++ {
					gap := rule.Selector[selectors[i-1].Comma+1 : selectors[i].Offset]
					if !strings.Contains(gap, "\n") {
						rep.at(rule.SelectorAt(selectors[i].Offset), selectors[i].Text,
							fmt.Sprintf("Selector %q must start on a new line.", selectors[i].Text))
					}
				}
			})
		}
		if kinds["property"] {
			css.WalkDecls(root, func(decl *css.Declaration) {
				if !strings.Contains(decl.Before, "\n") {
					rep.at(decl.Span().Start, decl.Property,
						fmt.Sprintf("Property %q must start on a new line.", decl.Property))
				}
			})
		}
		if kinds["media-query-condition"] {
			css.WalkAtRules(root, func(at *css.AtRule) {
				if at.Name != "media" {
					return
				}
				for _, part := range splitTopLevel(at.Params, ',')[1:] {
					gap := at.Params[part.comma+1 : part.offset]
					if !strings.Contains(gap, "\n") {
						rep.at(at.ParamsAt(part.offset), part.text,
							fmt.Sprintf("Media query condition %q must start on a new line.", part.text))
					}
				}
			})
		}
	}
}

type listPart struct {
	text   string
	offset int
	comma  int
}

// splitTopLevel splits s on sep outside parentheses and brackets, trimming
// each part. comma is the offset of the separator before the part.
func splitTopLevel(s string, sep byte) []listPart {
	var parts []listPart
	depth, start, comma := 0, 0, -1
	add := func(end int) {
		raw := s[start:end]
		text := strings.TrimSpace(raw)
		offset := start + strings.Index(raw, text)
		if text == "" {
			offset = start
		}
		parts = append(parts, listPart{text: text, offset: offset, comma: comma})
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				add(i)
				start, comma = i+1, i
			}
		}
	}
	add(len(s))
	return parts
}

// BlockIndentRule checks the indentation of nodes that start a line
type BlockIndentRule struct {
	BaseRule
}

// NewBlockIndentRule creates a new block indent rule
func NewBlockIndentRule() *BlockIndentRule {
	return &BlockIndentRule{BaseRule{
		RuleName:        "block-indent",
		RuleDescription: "Check indentation of blocks: [indent, base level]",
		RuleDefault:     []any{"    ", 0},
	}}
}

// indentOptions reads [indent, base]. A bare true means four spaces from
// level zero.
func indentOptions(v any) (string, int, bool) {
	switch val := v.(type) {
	case bool:
		return "    ", 0, val
	case string:
		return val, 0, val != ""
	case []any:
		if len(val) == 0 {
			return "", 0, false
		}
		indent, ok := val[0].(string)
		if !ok || indent == "" {
			return "", 0, false
		}
		base := 0
		if len(val) > 1 {
			base, _ = linter.ToInt(val[1])
		}
		return indent, base, true
	default:
		return "", 0, false
	}
}

func describeIndent(s string) string {
	if s == "" {
		return "no indentation"
	}
	return fmt.Sprintf("%q", s)
}

func (r *BlockIndentRule) Install(opts linter.Options) linter.Visitor {
	indent, base, ok := indentOptions(opts.Value)
	if !ok {
		return nil
	}
	rep := r.reporter(opts)

	check := func(before string, level int, pos css.Position, what string) {
		nl := strings.LastIndexByte(before, '\n')
		if nl < 0 {
			return
		}
		actual := before[nl+1:]
		if level < 0 {
			level = 0
		}
		expected := strings.Repeat(indent, level)
		if actual != expected {
			rep.at(pos, actual, fmt.Sprintf("Bad indentation of %s, expected %s but found %s.",
				what, describeIndent(expected), describeIndent(actual)))
		}
	}

	return func(root *css.Root) {
		css.Walk(root, func(n css.Node) bool {
			level := css.Depth(n) + base
			switch node := n.(type) {
			case *css.Rule:
				check(node.Before, level, node.Span().Start, "selector")
				check(node.After, level, node.Span().End, "closing brace")
			case *css.AtRule:
				check(node.Before, level, node.Span().Start, "at-rule")
				if node.HasBlock {
					check(node.After, level, node.Span().End, "closing brace")
				}
			case *css.Declaration:
				check(node.Before, level, node.Span().Start, "property")
			}
			return !rep.done()
		})
	}
}

// AlwaysSemicolonRule requires the last declaration of a block to end with ";"
type AlwaysSemicolonRule struct {
	BaseRule
}

// NewAlwaysSemicolonRule creates a new always semicolon rule
func NewAlwaysSemicolonRule() *AlwaysSemicolonRule {
	return &AlwaysSemicolonRule{BaseRule{
		RuleName:        "always-semicolon",
		RuleDescription: "Require a semicolon after the last declaration of a block",
		RuleDefault:     true,
	}}
}

func (r *AlwaysSemicolonRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	checkBlock := func(decls []*css.Declaration) {
		if len(decls) == 0 {
			return
		}
		last := decls[len(decls)-1]
		if !last.Semicolon {
			rep.at(last.Span().End, last.Property, "Attribute definition must end with a semicolon.")
		}
	}
	return func(root *css.Root) {
		eachBlock(root, rep, checkBlock)
	}
}

// MaxLengthRule limits line length. Lines holding a url() are exempt.
type MaxLengthRule struct {
	BaseRule
}

// NewMaxLengthRule creates a new max length rule
func NewMaxLengthRule() *MaxLengthRule {
	return &MaxLengthRule{BaseRule{
		RuleName:        "max-length",
		RuleDescription: "Limit the length of each line",
		RuleDefault:     120,
	}}
}

func (r *MaxLengthRule) Install(opts linter.Options) linter.Visitor {
	limit, ok := positiveInt(opts.Value)
	if !ok {
		return nil
	}
	rep := r.reporter(opts)
	return func(root *css.Root) {
		for i, line := range root.Source().Lines() {
			if rep.done() {
				return
			}
			n := utf8.RuneCountInString(line)
			if n <= limit || strings.Contains(strings.ToLower(line), "url(") {
				continue
			}
			rep.at(css.Position{Line: i + 1, Column: limit + 1}, "",
				fmt.Sprintf("Each line must not be longer than %d characters, found %d.", limit, n))
		}
	}
}
