// Package parser parses Python source with tree-sitter and exposes the
// result as an immutable concrete syntax tree.
//
// The tree-sitter grammar is error tolerant; this package is not. Any error
// or missing node makes Parse fail with a *SyntaxError, because callers
// rewrite and re-serialize the tree and a recovered tree would silently
// change the program.
//
// Basic usage:
//
//	p := parser.New()
//	result, err := p.Parse(ctx, []byte("def hello(): pass"))
//	if err != nil {
//	    // errors.Is(err, parser.ErrSyntax) for malformed input
//	}
//	tree := parser.BuildSyntaxTree(result)
package parser
