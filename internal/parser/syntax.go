package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// atomicKinds are copied as a single leaf carrying their full source text,
// unless they contain interpolations.
var atomicKinds = map[string]bool{
	"string": true,
}

// VerbatimKind labels the synthetic leaves that carry the literal text of an
// interpolated string between its parsed children.
const VerbatimKind = "verbatim"

// SyntaxNode is an immutable copy of a tree-sitter node. Leaves carry their
// source text; interior nodes carry children. Transformations never modify a
// SyntaxNode in place, they build new nodes with WithText or WithChildren.
type SyntaxNode struct {
	Kind     string
	Field    string // field name under the parent, empty if none
	Text     string // leaves only
	Named    bool
	Start    uint32 // byte offsets into the original source
	End      uint32
	StartRow uint32
	EndRow   uint32
	Children []*SyntaxNode
}

// IsLeaf reports whether the node has no children.
func (n *SyntaxNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// ChildByField returns the first child stored under field, or nil.
func (n *SyntaxNode) ChildByField(field string) *SyntaxNode {
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// WithText returns a copy of a leaf with its text replaced.
func (n *SyntaxNode) WithText(text string) *SyntaxNode {
	clone := *n
	clone.Text = text
	return &clone
}

// WithChildren returns a copy of the node with a new child list.
func (n *SyntaxNode) WithChildren(children []*SyntaxNode) *SyntaxNode {
	clone := *n
	clone.Children = children
	return &clone
}

// Leaves returns the leaves of the subtree in source order.
func (n *SyntaxNode) Leaves() []*SyntaxNode {
	var leaves []*SyntaxNode
	var walk func(*SyntaxNode)
	walk = func(node *SyntaxNode) {
		if node.IsLeaf() {
			leaves = append(leaves, node)
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return leaves
}

// Walk visits the subtree in pre-order. Returning false skips the children.
func (n *SyntaxNode) Walk(visit func(node, parent *SyntaxNode) bool) {
	var walk func(node, parent *SyntaxNode)
	walk = func(node, parent *SyntaxNode) {
		if !visit(node, parent) {
			return
		}
		for _, c := range node.Children {
			walk(c, node)
		}
	}
	walk(n, nil)
}

// SourceText concatenates the text of every leaf. For an interpolated
// string this is the string as written, with any rewritten names in place.
func (n *SyntaxNode) SourceText() string {
	var b strings.Builder
	for _, leaf := range n.Leaves() {
		b.WriteString(leaf.Text)
	}
	return b.String()
}

// BuildSyntaxTree copies a parse result into a SyntaxNode tree. Extras such
// as comments and line continuations are dropped, as are zero-width nodes.
//
// Strings are leaves, except f-strings with interpolations: those keep their
// children so that names inside the braces can be rewritten, and the text
// between children is kept in VerbatimKind leaves.
func BuildSyntaxTree(result *ParseResult) *SyntaxNode {
	if result == nil || result.RootNode == nil {
		return nil
	}
	return buildNode(result.RootNode, "", result.SourceCode, false)
}

func buildNode(ts *sitter.Node, field string, source []byte, verbatim bool) *SyntaxNode {
	node := &SyntaxNode{
		Kind:     ts.Type(),
		Field:    field,
		Named:    ts.IsNamed(),
		Start:    ts.StartByte(),
		End:      ts.EndByte(),
		StartRow: ts.StartPoint().Row,
		EndRow:   ts.EndPoint().Row,
	}

	childCount := int(ts.ChildCount())
	if childCount == 0 || (atomicKinds[node.Kind] && !hasInterpolation(ts)) {
		node.Text = ts.Content(source)
		return node
	}
	if atomicKinds[node.Kind] {
		verbatim = true
	}

	node.Children = make([]*SyntaxNode, 0, childCount)
	pos := node.Start
	for i := 0; i < childCount; i++ {
		child := ts.Child(i)
		if child == nil || child.IsExtra() || child.StartByte() == child.EndByte() {
			continue
		}
		if verbatim && child.StartByte() > pos {
			node.Children = append(node.Children, verbatimLeaf(node, source, pos, child.StartByte()))
		}
		node.Children = append(node.Children, buildNode(child, ts.FieldNameForChild(i), source, verbatim))
		if child.EndByte() > pos {
			pos = child.EndByte()
		}
	}
	if verbatim && node.End > pos {
		node.Children = append(node.Children, verbatimLeaf(node, source, pos, node.End))
	}

	return node
}

func hasInterpolation(ts *sitter.Node) bool {
	for i := 0; i < int(ts.ChildCount()); i++ {
		if child := ts.Child(i); child != nil && child.Type() == "interpolation" {
			return true
		}
	}
	return false
}

func verbatimLeaf(parent *SyntaxNode, source []byte, start, end uint32) *SyntaxNode {
	return &SyntaxNode{
		Kind:     VerbatimKind,
		Text:     string(source[start:end]),
		Start:    start,
		End:      end,
		StartRow: parent.StartRow,
		EndRow:   parent.EndRow,
	}
}
