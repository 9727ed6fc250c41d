// Package source provides position arithmetic over stylesheet text.
//
// # Overview
//
// Every diagnostic csshint reports is addressed by a 1-based line and column.
// This package owns the conversion between byte offsets and those positions,
// the line-ending normalization that all positions are relative to, and the
// highlighting used to build the colored variant of a message.
//
// # Usage Example
//
//	text := source.Normalize(raw)
//	idx := source.NewIndex(text)
//
//	line, col := idx.Position(42)
//	fmt.Println(idx.Line(line))
//
//	hl := source.NewHighlighter()
//	fmt.Println(hl.Mark(idx.Line(line), col, 3))
//
// # Related Packages
//
//   - pkg/css: Parser that stamps node spans with this index
//   - pkg/linter: Builds diagnostics from index positions
package source
