package source

import (
	"sort"
	"unicode/utf8"
)

// Index maps byte offsets of a text to line/column positions and back.
// Lines and columns are 1-based; columns count runes, not bytes.
type Index struct {
	text       string
	lineStarts []int
}

// NewIndex creates an index over normalized text
func NewIndex(text string) *Index {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{text: text, lineStarts: starts}
}

// Text returns the indexed text
func (ix *Index) Text() string {
	return ix.text
}

// LineCount returns the number of lines. An empty text has one empty line.
func (ix *Index) LineCount() int {
	return len(ix.lineStarts)
}

// LineOf returns the 1-based line containing offset.
func (ix *Index) LineOf(offset int) int {
	offset = ix.clamp(offset)
	// first line start strictly greater than offset, minus one
	return sort.SearchInts(ix.lineStarts, offset+1)
}

// Position returns the 1-based line and column of offset.
func (ix *Index) Position(offset int) (line, col int) {
	offset = ix.clamp(offset)
	line = ix.LineOf(offset)
	start := ix.lineStarts[line-1]
	return line, utf8.RuneCountInString(ix.text[start:offset]) + 1
}

// Offset returns the byte offset of a 1-based line and column.
// Positions past the end of a line resolve to the line's end.
func (ix *Index) Offset(line, col int) int {
	if line < 1 {
		return 0
	}
	if line > len(ix.lineStarts) {
		return len(ix.text)
	}
	off := ix.lineStarts[line-1]
	end := ix.lineEnd(line)
	for c := 1; c < col && off < end; c++ {
		_, size := utf8.DecodeRuneInString(ix.text[off:])
		off += size
	}
	return off
}

// Line returns the content of a 1-based line without its newline.
func (ix *Index) Line(n int) string {
	if n < 1 || n > len(ix.lineStarts) {
		return ""
	}
	return ix.text[ix.lineStarts[n-1]:ix.lineEnd(n)]
}

// Lines returns every line of the text without newlines.
func (ix *Index) Lines() []string {
	lines := make([]string, 0, len(ix.lineStarts))
	for n := 1; n <= len(ix.lineStarts); n++ {
		lines = append(lines, ix.Line(n))
	}
	return lines
}

func (ix *Index) lineEnd(n int) int {
	if n < len(ix.lineStarts) {
		return ix.lineStarts[n] - 1
	}
	return len(ix.text)
}

func (ix *Index) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(ix.text) {
		return len(ix.text)
	}
	return offset
}
