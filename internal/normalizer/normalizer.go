// Package normalizer abstracts user-defined names in Python source so that
// renaming variables, functions or classes does not change the result.
//
// Normalization runs in two passes over an immutable syntax tree. The first
// pass collects function and class definitions and import aliases. The
// second builds a rewritten copy in which functions become <FUNC>, classes
// become <CLASS> and every other non-builtin name becomes <VAR>. Import
// aliases, builtins and keywords are kept verbatim.
package normalizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ludo-technologies/codesim/internal/lexer"
	"github.com/ludo-technologies/codesim/internal/parser"
)

// ParseError reports source that is not valid Python.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot normalize invalid Python: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Normalizer rewrites Python snippets. It holds no state between calls and
// is safe for concurrent use.
type Normalizer struct{}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize strips comments and docstrings from code, parses it, and
// returns the rewritten source with the names that were abstracted.
// Whitespace-only input yields an empty result.
func (n *Normalizer) Normalize(ctx context.Context, code string) (*Result, error) {
	stripped := lexer.StripComments(code)
	if stripped == "" {
		return &Result{Code: "", Symbols: NewSymbolTable()}, nil
	}

	// tree-sitter parsers are not safe for concurrent use
	p := parser.New()
	parsed, err := p.Parse(ctx, []byte(stripped))
	if errors.Is(err, parser.ErrSyntax) {
		return nil, &ParseError{Err: err}
	}
	if err != nil {
		return nil, err
	}

	root := parser.BuildSyntaxTree(parsed)
	if root == nil {
		return &Result{Code: "", Symbols: NewSymbolTable()}, nil
	}

	defs := collectDefinitions(root)
	rw := newRewriter(defs)
	rewritten := rw.rewrite(root)

	return &Result{
		Code: unparse(rewritten, stripped),
		Symbols: SymbolTable{
			Variables: rw.variables,
			Functions: defs.functions,
			Classes:   defs.classes,
		},
	}, nil
}

// Normalize is a convenience wrapper around New().Normalize.
func Normalize(ctx context.Context, code string) (*Result, error) {
	return New().Normalize(ctx, code)
}
