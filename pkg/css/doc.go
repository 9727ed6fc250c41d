// Package css parses stylesheets into a read-only tree with source spans.
//
// # Overview
//
// The tree has five node kinds: Root, Rule, Declaration, AtRule and Comment.
// Every node except Root carries a Span (start and end line/column, 1-based)
// and a reference to the source.Index of the text it was parsed from, so any
// node can recover the content of its line. Declarations keep the literal
// whitespace around the property, colon and value because several lint rules
// inspect it.
//
// Tokenization is delegated to github.com/tdewolff/parse/v2/css; this package
// only assembles tokens into blocks.
//
// # Usage Example
//
//	root, err := css.Parse(text)
//	if err != nil {
//		var serr *css.SyntaxError
//		if errors.As(err, &serr) {
//			fmt.Printf("%d:%d %s\n", serr.Line, serr.Column, serr.Reason)
//		}
//		return
//	}
//
//	css.WalkDecls(root, func(d *css.Declaration) {
//		fmt.Println(d.Span().Start.Line, d.Property, d.Value)
//	})
//
// # Related Packages
//
//   - pkg/source: Offset to line/column mapping
//   - pkg/linter/rules: Rules walking this tree
package css
