package parser

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax is matched by every SyntaxError via errors.Is.
var ErrSyntax = errors.New("syntax errors found in source code")

// SyntaxError reports the first ERROR or MISSING node of a parse.
// Line and Column are 1-based.
type SyntaxError struct {
	Line    int
	Column  int
	Missing bool
	Near    string
}

func (e *SyntaxError) Error() string {
	kind := "unexpected input"
	if e.Missing {
		kind = "missing token"
	}
	if e.Near != "" {
		return fmt.Sprintf("%s at line %d, column %d near %q", kind, e.Line, e.Column, e.Near)
	}
	return fmt.Sprintf("%s at line %d, column %d", kind, e.Line, e.Column)
}

// Is lets errors.Is(err, ErrSyntax) match any SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Parser provides Python code parsing capabilities using tree-sitter.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// New creates a new Parser instance with Python grammar
func New() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Parser{
		parser: parser,
	}
}

// ParseResult represents the result of parsing Python code
type ParseResult struct {
	Tree       *sitter.Tree
	RootNode   *sitter.Node
	SourceCode []byte
}

// Parse parses Python source code. Any ERROR or MISSING node in the tree is
// reported as a *SyntaxError; partial trees are never returned.
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, p.firstSyntaxError(rootNode, source)
	}

	return &ParseResult{
		Tree:       tree,
		RootNode:   rootNode,
		SourceCode: source,
	}, nil
}

// WalkTree traverses the tree in pre-order and calls the visitor for each node
func (p *Parser) WalkTree(node *sitter.Node, visitor func(*sitter.Node) error) error {
	if err := visitor(node); err != nil {
		return err
	}

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		child := node.Child(i)
		if err := p.WalkTree(child, visitor); err != nil {
			return err
		}
	}

	return nil
}

// errStopWalk ends a WalkTree early once the wanted node is found.
var errStopWalk = errors.New("stop walk")

// firstSyntaxError locates the first ERROR or MISSING node in document order.
func (p *Parser) firstSyntaxError(root *sitter.Node, source []byte) *SyntaxError {
	var found *sitter.Node
	_ = p.WalkTree(root, func(n *sitter.Node) error {
		if n.IsError() || n.IsMissing() {
			found = n
			return errStopWalk
		}
		return nil
	})

	if found == nil {
		// HasError was true but no node carries the flag; point at the root
		return &SyntaxError{Line: 1, Column: 1}
	}

	start := found.StartPoint()
	near := found.Content(source)
	if len(near) > 20 {
		near = near[:20]
	}
	return &SyntaxError{
		Line:    int(start.Row) + 1,
		Column:  int(start.Column) + 1,
		Missing: found.IsMissing(),
		Near:    near,
	}
}
