package css

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// TokenType aliases the lexer token type so callers don't import the lexer.
type TokenType = css.TokenType

// Token kinds re-exported from the lexer.
const (
	ErrorToken              = css.ErrorToken
	IdentToken              = css.IdentToken
	FunctionToken           = css.FunctionToken
	AtKeywordToken          = css.AtKeywordToken
	HashToken               = css.HashToken
	StringToken             = css.StringToken
	BadStringToken          = css.BadStringToken
	URLToken                = css.URLToken
	BadURLToken             = css.BadURLToken
	DelimToken              = css.DelimToken
	NumberToken             = css.NumberToken
	PercentageToken         = css.PercentageToken
	DimensionToken          = css.DimensionToken
	WhitespaceToken         = css.WhitespaceToken
	ColonToken              = css.ColonToken
	SemicolonToken          = css.SemicolonToken
	CommaToken              = css.CommaToken
	LeftBracketToken        = css.LeftBracketToken
	RightBracketToken       = css.RightBracketToken
	LeftParenthesisToken    = css.LeftParenthesisToken
	RightParenthesisToken   = css.RightParenthesisToken
	LeftBraceToken          = css.LeftBraceToken
	RightBraceToken         = css.RightBraceToken
	CommentToken            = css.CommentToken
	CustomPropertyNameToken = css.CustomPropertyNameToken
)

// Token is one lexeme with its byte offset in the tokenized text.
type Token struct {
	Type   TokenType
	Text   string
	Offset int
}

// End returns the offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Is reports whether the token is a delimiter with the given text.
func (t Token) Is(delim string) bool {
	return t.Type == DelimToken && t.Text == delim
}

// Tokenize splits text into tokens. The concatenation of all token texts
// equals the input; whitespace and comments are kept as tokens.
func Tokenize(text string) ([]Token, error) {
	lexer := css.NewLexer(parse.NewInputString(text))

	var toks []Token
	offset := 0
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return toks, &SyntaxError{Reason: err.Error(), Offset: offset}
			}
			if offset < len(text) {
				return toks, &SyntaxError{Reason: "Unexpected character", Offset: offset}
			}
			return toks, nil
		}
		tok := Token{Type: tt, Text: string(data), Offset: offset}
		if err := checkToken(tok); err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		offset += len(data)
	}
}

// checkToken rejects tokens the lexer produced from unterminated input.
func checkToken(tok Token) error {
	switch tok.Type {
	case css.BadStringToken:
		return &SyntaxError{Reason: "Unclosed string", Offset: tok.Offset}
	case css.BadURLToken:
		return &SyntaxError{Reason: "Unclosed bracket", Offset: tok.Offset}
	case css.StringToken:
		if !closedString(tok.Text) {
			return &SyntaxError{Reason: "Unclosed string", Offset: tok.Offset}
		}
	case css.CommentToken:
		if len(tok.Text) < 4 || !strings.HasSuffix(tok.Text, "*/") {
			return &SyntaxError{Reason: "Unclosed comment", Offset: tok.Offset}
		}
	}
	return nil
}

// closedString reports whether a string token ends with an unescaped copy of
// its opening quote.
func closedString(s string) bool {
	if len(s) < 2 || s[len(s)-1] != s[0] {
		return false
	}
	slashes := 0
	for i := len(s) - 2; i > 0 && s[i] == '\\'; i-- {
		slashes++
	}
	return slashes%2 == 0
}
