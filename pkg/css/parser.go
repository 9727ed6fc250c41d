package css

import (
	"errors"
	"strings"

	"github.com/platinummonkey/csshint/pkg/source"
)

// Parse builds a tree from normalized stylesheet text. A leading byte order
// mark is skipped but still counts toward offsets.
func Parse(text string) (*Root, error) {
	idx := source.NewIndex(text)

	body := source.StripBOM(text)
	base := len(text) - len(body)

	toks, err := Tokenize(body)
	if err != nil {
		return nil, locate(err, idx, base)
	}
	for i := range toks {
		toks[i].Offset += base
	}

	p := &parser{toks: toks, text: text, index: idx}
	root := &Root{}
	root.index = idx
	root.setStart(0)
	root.setEnd(len(text))

	if err := p.parseContents(root, false); err != nil {
		return nil, locate(err, idx, 0)
	}
	return root, nil
}

// locate fills in line and column of a syntax error.
func locate(err error, idx *source.Index, base int) error {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		serr.Offset += base
		serr.Line, serr.Column = idx.Position(serr.Offset)
	}
	return err
}

type parser struct {
	toks  []Token
	pos   int
	text  string
	index *source.Index
}

func (p *parser) eof() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

// raw returns the source text covered by toks[from:to].
func (p *parser) raw(from, to int) string {
	if from >= to {
		return ""
	}
	return p.text[p.toks[from].Offset:p.toks[to-1].End()]
}

// skipWhitespace consumes whitespace tokens and returns their text.
func (p *parser) skipWhitespace() string {
	start := p.pos
	for !p.eof() && p.peek().Type == WhitespaceToken {
		p.pos++
	}
	return p.raw(start, p.pos)
}

// parseContents reads child nodes into parent until its block is closed by
// "}", or until EOF at the top level.
func (p *parser) parseContents(parent Container, nested bool) error {
	for {
		before := p.skipWhitespace()
		if p.eof() {
			if nested {
				return &SyntaxError{Reason: "Unclosed block", Offset: parent.Span().Start.Offset}
			}
			parent.setAfter(before)
			return nil
		}

		tok := p.peek()
		switch tok.Type {
		case RightBraceToken:
			if !nested {
				return &SyntaxError{Reason: "Unexpected }", Offset: tok.Offset}
			}
			p.pos++
			parent.setAfter(before)
			parent.setEnd(tok.End())
			return nil
		case CommentToken:
			p.pos++
			p.addComment(parent, tok)
		case SemicolonToken:
			p.pos++
		case AtKeywordToken:
			if err := p.parseAtRule(parent, before); err != nil {
				return err
			}
		default:
			if err := p.parseStatement(parent, before); err != nil {
				return err
			}
		}
	}
}

func (p *parser) addComment(parent Container, tok Token) {
	c := &Comment{Text: strings.TrimSpace(tok.Text[2 : len(tok.Text)-2])}
	c.index = p.index
	c.parent = parent
	c.setStart(tok.Offset)
	c.setEnd(tok.End())
	parent.append(c)
}

// scan advances to the first depth-0 token that ends a statement and returns
// its index. Brackets and parentheses must balance before the terminator.
func (p *parser) scan(terminators ...TokenType) (int, error) {
	var open []Token
	for i := p.pos; i < len(p.toks); i++ {
		tok := p.toks[i]
		switch tok.Type {
		case FunctionToken, LeftParenthesisToken, LeftBracketToken:
			open = append(open, tok)
			continue
		case RightParenthesisToken, RightBracketToken:
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
			continue
		}
		if len(open) > 0 {
			continue
		}
		for _, tt := range terminators {
			if tok.Type == tt {
				return i, nil
			}
		}
	}
	if len(open) > 0 {
		return -1, &SyntaxError{Reason: "Unclosed bracket", Offset: open[len(open)-1].Offset}
	}
	return len(p.toks), nil
}

// parseStatement reads either a rule or a declaration, whichever terminator
// comes first deciding.
func (p *parser) parseStatement(parent Container, before string) error {
	end, err := p.scan(LeftBraceToken, SemicolonToken, RightBraceToken)
	if err != nil {
		return err
	}

	if end < len(p.toks) && p.toks[end].Type == LeftBraceToken {
		return p.parseRule(parent, before, end)
	}
	return p.parseDeclaration(parent, before, end)
}

func (p *parser) parseRule(parent Container, before string, brace int) error {
	start := p.pos
	last := trimTrailingSpace(p.toks, start, brace)

	r := &Rule{
		Selector: p.raw(start, last),
		Before:   before,
		Between:  p.raw(last, brace),
	}
	r.index = p.index
	r.parent = parent
	r.setStart(p.toks[start].Offset)
	parent.append(r)

	p.pos = brace + 1
	return p.parseContents(r, true)
}

func (p *parser) parseDeclaration(parent Container, before string, end int) error {
	start := p.pos
	last := trimTrailingSpace(p.toks, start, end)

	colon := -1
	for i := start; i < last; i++ {
		if p.toks[i].Type == ColonToken {
			colon = i
			break
		}
	}
	if colon < 0 || colon == start {
		return &SyntaxError{Reason: "Unknown word", Offset: p.toks[start].Offset}
	}

	propEnd := trimTrailingSpace(p.toks, start, colon)
	d := &Declaration{
		Property:           p.raw(start, propEnd),
		Before:             before,
		BetweenBeforeColon: p.raw(propEnd, colon),
	}
	d.index = p.index
	d.parent = parent

	valueStart := colon + 1
	for valueStart < last && p.toks[valueStart].Type == WhitespaceToken {
		valueStart++
	}
	d.BetweenAfterColon = p.raw(colon+1, valueStart)

	valueEnd := last
	if bang := importantStart(p.toks, valueStart, last); bang >= 0 {
		d.Important = true
		d.ImportantRaw = p.raw(bang, last)
		valueEnd = trimTrailingSpace(p.toks, valueStart, bang)
	}
	d.Value = p.raw(valueStart, valueEnd)
	if valueStart < last {
		d.ValueOffset = p.toks[valueStart].Offset
	} else {
		d.ValueOffset = p.toks[colon].End() + len(d.BetweenAfterColon)
	}

	d.setStart(p.toks[start].Offset)
	d.setEnd(p.toks[last-1].End())

	p.pos = end
	if end < len(p.toks) && p.toks[end].Type == SemicolonToken {
		d.Semicolon = true
		p.pos++
	}
	parent.append(d)
	return nil
}

func (p *parser) parseAtRule(parent Container, before string) error {
	keyword := p.peek()
	p.pos++

	a := &AtRule{
		Name:   strings.ToLower(keyword.Text[1:]),
		Before: before,
	}
	a.index = p.index
	a.parent = parent
	a.setStart(keyword.Offset)
	parent.append(a)

	afterName := p.skipWhitespace()
	end, err := p.scan(LeftBraceToken, SemicolonToken, RightBraceToken)
	if err != nil {
		return err
	}

	last := trimTrailingSpace(p.toks, p.pos, end)
	a.Params = p.raw(p.pos, last)
	if p.pos < len(p.toks) {
		a.ParamsOffset = p.toks[p.pos].Offset
	} else {
		a.ParamsOffset = keyword.End()
	}
	a.Between = p.raw(last, end)
	if a.Params == "" {
		a.Between = afterName
	}

	if last > p.pos {
		a.setEnd(p.toks[last-1].End())
	} else {
		a.setEnd(keyword.End())
	}

	if end >= len(p.toks) {
		p.pos = end
		return nil
	}

	switch p.toks[end].Type {
	case LeftBraceToken:
		a.HasBlock = true
		p.pos = end + 1
		return p.parseContents(a, true)
	case SemicolonToken:
		a.setEnd(p.toks[end].End())
		p.pos = end + 1
	default:
		p.pos = end
	}
	return nil
}

// trimTrailingSpace returns the end index of toks[from:to] without trailing
// whitespace tokens.
func trimTrailingSpace(toks []Token, from, to int) int {
	for to > from && toks[to-1].Type == WhitespaceToken {
		to--
	}
	return to
}

// importantStart returns the index of the "!" of a trailing "!important"
// within toks[from:to], or -1.
func importantStart(toks []Token, from, to int) int {
	i := to - 1
	if i < from || toks[i].Type != IdentToken || !strings.EqualFold(toks[i].Text, "important") {
		return -1
	}
	i--
	for i >= from && toks[i].Type == WhitespaceToken {
		i--
	}
	if i >= from && toks[i].Is("!") {
		return i
	}
	return -1
}
