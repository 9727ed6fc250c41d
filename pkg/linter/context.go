package linter

import (
	"unicode/utf8"

	"github.com/platinummonkey/csshint/pkg/source"
)

// HexCase is the letter case convention of hexadecimal colors in a file.
type HexCase int

const (
	HexCaseUnset HexCase = iota
	HexCaseLower
	HexCaseUpper
)

// CheckContext holds everything that lives exactly as long as one file's
// check: the diagnostic budget, the collected diagnostics and the
// conventions a file establishes for itself. The Engine creates a fresh one
// per Check, so nothing leaks from one file into the next.
type CheckContext struct {
	Path      string
	Content   string
	Index     *source.Index
	MaxErrors int

	// FontFamilies maps a lower-cased font family name to the spelling it was
	// first written with in this file.
	FontFamilies map[string]string
	// HexColorCase is set by the first letter-bearing hex color in the file.
	HexColorCase HexCase

	diagnostics []Diagnostic
	highlighter *source.Highlighter
}

// NewCheckContext creates the per-file state for normalized content. A
// maxErrors of zero means unbounded.
func NewCheckContext(path, content string, maxErrors int) *CheckContext {
	if maxErrors < 0 {
		maxErrors = 0
	}
	return &CheckContext{
		Path:         path,
		Content:      content,
		Index:        source.NewIndex(content),
		MaxErrors:    maxErrors,
		FontFamilies: make(map[string]string),
		highlighter:  source.NewHighlighter(),
	}
}

// Exhausted reports whether the diagnostic budget is used up.
func (c *CheckContext) Exhausted() bool {
	return c.MaxErrors > 0 && len(c.diagnostics) >= c.MaxErrors
}

// Report appends d unless the budget is exhausted and reports whether it was
// recorded. The colored message is derived from the source when unset.
func (c *CheckContext) Report(d Diagnostic) bool {
	if c.Exhausted() {
		return false
	}
	if d.ColorMessage == "" {
		d.ColorMessage = c.colorize(d)
	}
	c.diagnostics = append(c.diagnostics, d)
	return true
}

// Count returns the number of diagnostics recorded so far.
func (c *CheckContext) Count() int {
	return len(c.diagnostics)
}

// Diagnostics returns the recorded diagnostics in report order.
func (c *CheckContext) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// colorize renders the message followed by its source line with the
// offending text marked.
func (c *CheckContext) colorize(d Diagnostic) string {
	if !d.HasPosition() || c.Index == nil {
		return c.highlighter.Emphasis(d.Message)
	}
	line := c.Index.Line(d.Line)
	if line == "" {
		return d.Message
	}
	length := utf8.RuneCountInString(d.ErrorChar)
	if length == 0 {
		length = 1
	}
	col := d.Column
	if col == 0 {
		col = 1
		length = utf8.RuneCountInString(line)
	}
	return d.Message + " " + c.highlighter.Label("->") + " " + source.Excerpt(c.highlighter.Mark(line, col, length))
}
