package rules

import (
	"strings"

	"github.com/platinummonkey/csshint/pkg/css"
)

// Attribute is one [name op value] part of a compound selector.
type Attribute struct {
	Name     string
	Operator string
	Value    string
}

// Compound is a sequence of simple selectors not separated by a combinator,
// such as div.note#main:hover.
type Compound struct {
	Text string
	// Offset is the byte offset of Text within the rule's selector.
	Offset int
	// Combinator joins this compound to the previous one: " ", ">", "+" or
	// "~". It is empty for the first compound.
	Combinator string
	Element    string
	Classes    []string
	IDs        []string
	Attributes []Attribute
	// Pseudos keeps pseudo-classes and pseudo-elements with their colons.
	Pseudos []string
}

// HasPseudo reports whether the compound carries the given pseudo-class.
func (c *Compound) HasPseudo(name string) bool {
	for _, p := range c.Pseudos {
		if strings.EqualFold(strings.TrimLeft(p, ":"), name) {
			return true
		}
	}
	return false
}

// Combinator is an explicit combinator token inside a selector.
type Combinator struct {
	Text        string
	Offset      int
	SpaceBefore bool
	SpaceAfter  bool
}

// Selector is one comma-separated member of a rule's selector list.
type Selector struct {
	Text        string
	Offset      int
	Compounds   []Compound
	Combinators []Combinator
	// Comma is the offset of the comma ending the selector, or -1.
	Comma int
}

// Last returns the rightmost compound, the one the selector matches.
func (s *Selector) Last() *Compound {
	if len(s.Compounds) == 0 {
		return nil
	}
	return &s.Compounds[len(s.Compounds)-1]
}

// ParseSelectors splits a selector list and decomposes every member. Text
// that cannot be tokenized yields no selectors.
func ParseSelectors(text string) []Selector {
	toks, err := css.Tokenize(text)
	if err != nil {
		return nil
	}

	var (
		selectors []Selector
		current   = Selector{Comma: -1}
		compound  *Compound
		pending   string
		spaced    bool
	)

	start := 0
	closeCompound := func(end int) {
		if compound != nil {
			compound.Text = text[compound.Offset:end]
			current.Compounds = append(current.Compounds, *compound)
			compound = nil
		}
	}
	openCompound := func(offset int) *Compound {
		if compound == nil {
			compound = &Compound{Offset: offset}
			if len(current.Compounds) > 0 {
				compound.Combinator = pending
				if compound.Combinator == "" {
					compound.Combinator = " "
				}
			}
			pending = ""
		}
		return compound
	}
	finish := func(end int) {
		if end < start {
			end = start
		}
		closeCompound(end)
		raw := text[start:end]
		trimmed := strings.TrimSpace(raw)
		current.Text = trimmed
		current.Offset = start + strings.Index(raw, trimmed)
		if trimmed == "" {
			current.Offset = start
		}
		selectors = append(selectors, current)
	}

	lastEnd := 0
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch {
		case tok.Type == css.CommaToken:
			finish(lastEnd)
			current = Selector{Comma: -1}
			selectors[len(selectors)-1].Comma = tok.Offset
			start = tok.End()
			pending, spaced = "", false
			continue
		case tok.Type == css.WhitespaceToken || tok.Type == css.CommentToken:
			if compound != nil {
				closeCompound(lastEnd)
			}
			spaced = true
			continue
		case tok.Is(">") || tok.Is("+") || tok.Is("~"):
			closeCompound(lastEnd)
			next := i + 1 < len(toks) && (toks[i+1].Type == css.WhitespaceToken || toks[i+1].Type == css.CommentToken)
			current.Combinators = append(current.Combinators, Combinator{
				Text:        tok.Text,
				Offset:      tok.Offset,
				SpaceBefore: spaced,
				SpaceAfter:  next,
			})
			pending = tok.Text
			spaced = false
			lastEnd = tok.End()
			continue
		}

		c := openCompound(tok.Offset)
		spaced = false
		switch {
		case tok.Is(".") && i+1 < len(toks) && toks[i+1].Type == css.IdentToken:
			i++
			c.Classes = append(c.Classes, toks[i].Text)
		case tok.Type == css.HashToken:
			c.IDs = append(c.IDs, tok.Text[1:])
		case tok.Type == css.IdentToken:
			c.Element = strings.ToLower(tok.Text)
		case tok.Is("*") || tok.Is("&"):
			c.Element = tok.Text
		case tok.Type == css.ColonToken:
			j := i + 1
			if j < len(toks) && toks[j].Type == css.ColonToken {
				j++
			}
			if j < len(toks) && toks[j].Type == css.FunctionToken {
				j = closing(toks, j)
			}
			if j >= len(toks) {
				j = len(toks) - 1
			}
			c.Pseudos = append(c.Pseudos, text[tok.Offset:toks[j].End()])
			i = j
		case tok.Type == css.LeftBracketToken:
			j := closing(toks, i)
			if j >= len(toks) {
				j = len(toks) - 1
			}
			c.Attributes = append(c.Attributes, parseAttribute(toks[i+1:j]))
			i = j
		case tok.Type == css.FunctionToken || tok.Type == css.LeftParenthesisToken:
			i = closing(toks, i)
			if i >= len(toks) {
				i = len(toks) - 1
			}
		}
		lastEnd = toks[i].End()
	}
	finish(lastEnd)
	return selectors
}

// closing returns the index of the token closing the bracket or function
// opened at toks[open].
func closing(toks []css.Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Type {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(toks)
}

func parseAttribute(toks []css.Token) Attribute {
	var attr Attribute
	for _, tok := range toks {
		switch {
		case tok.Type == css.WhitespaceToken:
		case attr.Name == "" && tok.Type == css.IdentToken:
			attr.Name = strings.ToLower(tok.Text)
		case attr.Operator == "" && attr.Name != "" && tok.Type != css.IdentToken && tok.Type != css.StringToken:
			attr.Operator += tok.Text
		case attr.Name != "" && (tok.Type == css.IdentToken || tok.Type == css.StringToken):
			attr.Value = strings.Trim(tok.Text, `"'`)
		}
	}
	return attr
}

// isHeading reports whether element is h1 to h6.
func isHeading(element string) bool {
	return len(element) == 2 && element[0] == 'h' && element[1] >= '1' && element[1] <= '6'
}
