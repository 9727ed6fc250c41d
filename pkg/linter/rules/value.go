package rules

import (
	"strconv"
	"strings"

	"github.com/platinummonkey/csshint/pkg/css"
)

// ValueKind classifies a value token.
type ValueKind int

const (
	KindIdent ValueKind = iota
	KindNumber
	KindLength
	KindPercentage
	KindColor
	KindString
	KindFunction
	KindURL
	KindOperator
)

// ValueToken is one significant token of a declaration value.
type ValueToken struct {
	Kind ValueKind
	Text string
	// Offset is the byte offset within the value.
	Offset int
	// Depth counts the functions enclosing the token.
	Depth int
}

// Number splits a numeric token into its number and unit.
func (t ValueToken) Number() (float64, string, bool) {
	if t.Kind != KindNumber && t.Kind != KindLength && t.Kind != KindPercentage {
		return 0, "", false
	}
	i := len(t.Text)
	for i > 0 && !isNumberByte(t.Text[i-1]) {
		i--
	}
	n, err := strconv.ParseFloat(t.Text[:i], 64)
	if err != nil {
		return 0, "", false
	}
	return n, strings.ToLower(t.Text[i:]), true
}

func isNumberByte(b byte) bool {
	return b >= '0' && b <= '9' || b == '.'
}

// ParseValue returns the significant tokens of a value. Whitespace and
// comments are dropped; text that fails to tokenize yields what was read.
func ParseValue(value string) []ValueToken {
	toks, _ := css.Tokenize(value)

	out := make([]ValueToken, 0, len(toks))
	depth := 0
	for _, tok := range toks {
		vt := ValueToken{Text: tok.Text, Offset: tok.Offset, Depth: depth}
		switch tok.Type {
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.IdentToken, css.CustomPropertyNameToken:
			vt.Kind = KindIdent
		case css.NumberToken:
			vt.Kind = KindNumber
		case css.DimensionToken:
			vt.Kind = KindLength
		case css.PercentageToken:
			vt.Kind = KindPercentage
		case css.HashToken:
			vt.Kind = KindColor
		case css.StringToken:
			vt.Kind = KindString
		case css.URLToken:
			vt.Kind = KindURL
		case css.FunctionToken:
			vt.Kind = KindFunction
			depth++
		case css.LeftParenthesisToken:
			vt.Kind = KindOperator
			depth++
		case css.RightParenthesisToken:
			vt.Kind = KindOperator
			if depth > 0 {
				depth--
			}
			vt.Depth = depth
		default:
			vt.Kind = KindOperator
		}
		out = append(out, vt)
	}
	return out
}

// FunctionName returns the lower-cased name of a function token.
func (t ValueToken) FunctionName() string {
	return strings.ToLower(strings.TrimSuffix(t.Text, "("))
}

// topLevelItems counts the space separated items of a value outside
// functions, stopping at the first comma.
func topLevelItems(tokens []ValueToken) int {
	n := 0
	for _, t := range tokens {
		if t.Depth > 0 || t.Kind == KindOperator && t.Text == ")" {
			continue
		}
		if t.Kind == KindOperator && t.Text == "," {
			break
		}
		if t.Kind == KindOperator && t.Text == "/" {
			continue
		}
		n++
	}
	return n
}

// vendorPrefix splits "-webkit-transition" into "-webkit-" and "transition".
func vendorPrefix(name string) (string, string) {
	name = strings.ToLower(name)
	if len(name) < 3 || name[0] != '-' || name[1] == '-' {
		return "", name
	}
	i := strings.IndexByte(name[1:], '-')
	if i < 0 {
		return "", name
	}
	return name[:i+2], name[i+2:]
}

// unhack strips a leading star or underscore hack from a property name.
func unhack(prop string) string {
	return strings.TrimLeft(prop, "*_")
}

// isZeroValue reports whether the value is a zero with or without unit.
func isZeroValue(value string) bool {
	toks := ParseValue(value)
	if len(toks) != 1 {
		return false
	}
	n, _, ok := toks[0].Number()
	return ok && n == 0
}
