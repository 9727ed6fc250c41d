package css

import (
	"strings"

	"github.com/platinummonkey/csshint/pkg/source"
)

// NodeType identifies the kind of a node
type NodeType int

const (
	RootNode NodeType = iota
	RuleNode
	DeclarationNode
	AtRuleNode
	CommentNode
)

func (t NodeType) String() string {
	return []string{"root", "rule", "decl", "atrule", "comment"}[t]
}

// Position is a location in the parsed text.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Span covers a node from its first to its last character, both inclusive.
type Span struct {
	Start Position
	End   Position
}

// Node is implemented by every element of the tree
type Node interface {
	Type() NodeType
	Span() Span
	Parent() Container
	Source() *source.Index
}

// Container is a node that holds child nodes
type Container interface {
	Node
	Children() []Node
	append(Node)
	setAfter(string)
	setEnd(int)
}

type node struct {
	span   Span
	parent Container
	index  *source.Index
}

func (n *node) Span() Span              { return n.span }
func (n *node) Parent() Container       { return n.parent }
func (n *node) Source() *source.Index   { return n.index }

// At converts an absolute offset into a Position within the node's text.
func (n *node) At(offset int) Position {
	line, col := n.index.Position(offset)
	return Position{Offset: offset, Line: line, Column: col}
}

// LineText returns the full text of the line the node starts on.
func (n *node) LineText() string {
	return n.index.Line(n.span.Start.Line)
}

func (n *node) setStart(offset int) {
	n.span.Start = n.At(offset)
}

func (n *node) setEnd(offset int) {
	if offset > 0 {
		offset--
	}
	n.span.End = n.At(offset)
}

type container struct {
	node
	nodes []Node
	// After is the raw whitespace between the last child and the end of the block.
	After string
}

func (c *container) Children() []Node  { return c.nodes }
func (c *container) append(n Node)     { c.nodes = append(c.nodes, n) }
func (c *container) setAfter(s string) { c.After = s }

// Root is the top of a parsed stylesheet
type Root struct {
	container
}

func (r *Root) Type() NodeType { return RootNode }

// Text returns the full source text.
func (r *Root) Text() string { return r.index.Text() }

// Rule is a selector with a declaration block
type Rule struct {
	container
	Selector string
	// Before is the raw whitespace preceding the selector.
	Before string
	// Between is the raw whitespace between the selector and "{".
	Between string
}

func (r *Rule) Type() NodeType { return RuleNode }

// SelectorAt returns the position of a byte offset within Selector.
func (r *Rule) SelectorAt(offset int) Position {
	return r.At(r.span.Start.Offset + offset)
}

// Declarations returns the direct declaration children of the rule.
func (r *Rule) Declarations() []*Declaration {
	return declarations(r.nodes)
}

// Semicolon reports whether the last declaration of the block ends with ";".
func (r *Rule) Semicolon() bool {
	decls := r.Declarations()
	if len(decls) == 0 {
		return false
	}
	return decls[len(decls)-1].Semicolon
}

// Declaration is a property/value pair
type Declaration struct {
	node
	Property string
	Value    string
	// Important is set for "!important" values; ImportantRaw keeps its text.
	Important    bool
	ImportantRaw string
	// Before is the raw whitespace preceding the property.
	Before string
	// BetweenBeforeColon is the raw text between the property and ":".
	BetweenBeforeColon string
	// BetweenAfterColon is the raw whitespace between ":" and the value.
	BetweenAfterColon string
	// ValueOffset is the absolute offset of the first value character.
	ValueOffset int
	// Semicolon reports whether the declaration is terminated by ";".
	Semicolon bool
}

func (d *Declaration) Type() NodeType { return DeclarationNode }

// Prop returns the lower-cased property name.
func (d *Declaration) Prop() string {
	return strings.ToLower(d.Property)
}

// ValueAt returns the position of a byte offset within Value.
func (d *Declaration) ValueAt(offset int) Position {
	return d.At(d.ValueOffset + offset)
}

// AtRule is an "@name params" statement with an optional block
type AtRule struct {
	container
	Name   string
	Params string
	// ParamsOffset is the absolute offset of the first params character.
	ParamsOffset int
	// Before is the raw whitespace preceding the at-keyword.
	Before string
	// Between is the raw whitespace between params and "{" or ";".
	Between  string
	HasBlock bool
}

func (a *AtRule) Type() NodeType { return AtRuleNode }

// ParamsAt returns the position of a byte offset within Params.
func (a *AtRule) ParamsAt(offset int) Position {
	return a.At(a.ParamsOffset + offset)
}

// Declarations returns the direct declaration children of the at-rule.
func (a *AtRule) Declarations() []*Declaration {
	return declarations(a.nodes)
}

// Comment is a "/* */" comment
type Comment struct {
	node
	// Text is the comment body without delimiters.
	Text string
}

func (c *Comment) Type() NodeType { return CommentNode }

func declarations(nodes []Node) []*Declaration {
	var decls []*Declaration
	for _, n := range nodes {
		if d, ok := n.(*Declaration); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// Depth returns the number of Rule and AtRule ancestors of n.
func Depth(n Node) int {
	depth := 0
	for p := n.Parent(); p != nil && p.Type() != RootNode; p = p.Parent() {
		depth++
	}
	return depth
}
