package source

import (
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Highlighter marks substrings of source lines for terminal output.
type Highlighter struct {
	mark  *color.Color
	label *color.Color
}

// NewHighlighter creates a highlighter with color forced on, so the colored
// variant of a message is the same whether or not stdout is a terminal.
func NewHighlighter() *Highlighter {
	mark := color.New(color.FgRed, color.Bold)
	mark.EnableColor()
	label := color.New(color.FgHiBlack)
	label.EnableColor()
	return &Highlighter{mark: mark, label: label}
}

// Mark returns line with length runes starting at the 1-based column col
// wrapped in the highlight color. Out of range columns return the line as-is.
func (h *Highlighter) Mark(line string, col, length int) string {
	start, end := runeRange(line, col, length)
	if start < 0 {
		return line
	}
	return line[:start] + h.mark.Sprint(line[start:end]) + line[end:]
}

// Label renders text in the muted label color.
func (h *Highlighter) Label(text string) string {
	return h.label.Sprint(text)
}

// Emphasis renders text in the highlight color.
func (h *Highlighter) Emphasis(text string) string {
	return h.mark.Sprint(text)
}

// Excerpt trims surrounding whitespace from a line for display.
func Excerpt(line string) string {
	return strings.TrimSpace(line)
}

// runeRange converts a 1-based rune column and rune length into byte bounds.
func runeRange(line string, col, length int) (int, int) {
	if col < 1 || length < 1 {
		return -1, -1
	}
	start := -1
	r := 1
	for i := range line {
		if r == col {
			start = i
			break
		}
		r++
	}
	if start < 0 {
		return -1, -1
	}
	end := start
	for n := 0; n < length && end < len(line); n++ {
		_, size := utf8.DecodeRuneInString(line[end:])
		end += size
	}
	return start, end
}
