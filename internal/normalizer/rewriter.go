package normalizer

import "github.com/ludo-technologies/codesim/internal/parser"

// untouchedKinds are statements whose identifiers are not name references:
// module paths, imported names and declaration lists stay verbatim.
var untouchedKinds = map[string]bool{
	"import_statement":        true,
	"import_from_statement":   true,
	"future_import_statement": true,
	"global_statement":        true,
	"nonlocal_statement":      true,
	"case_pattern":            true,
}

// rewriter builds a normalized copy of a syntax tree. It reads the
// definitions gathered by the first pass and records every variable name it
// substitutes. The input tree is never modified.
type rewriter struct {
	defs      *definitions
	variables NameSet
}

func newRewriter(defs *definitions) *rewriter {
	return &rewriter{
		defs:      defs,
		variables: NameSet{},
	}
}

func (r *rewriter) rewrite(node *parser.SyntaxNode) *parser.SyntaxNode {
	if untouchedKinds[node.Kind] {
		return node
	}

	switch node.Kind {
	case "identifier":
		return r.rewriteName(node)
	case "function_definition":
		return r.rewriteDefinition(node, RoleFunction)
	case "class_definition":
		return r.rewriteDefinition(node, RoleClass)
	case "lambda":
		return r.mapChildren(node, func(c *parser.SyntaxNode) *parser.SyntaxNode {
			if c.Field == "parameters" {
				return r.rewriteParameters(c)
			}
			return r.rewrite(c)
		})
	case "attribute":
		return r.rewriteAttribute(node)
	case "keyword_argument":
		return r.mapChildren(node, func(c *parser.SyntaxNode) *parser.SyntaxNode {
			if c.Field == "name" {
				return c
			}
			return r.rewrite(c)
		})
	case "except_clause":
		return r.rewriteExceptClause(node)
	}

	if node.IsLeaf() {
		return node
	}
	return r.mapChildren(node, r.rewrite)
}

// rewriteName classifies a referenced or bound name.
func (r *rewriter) rewriteName(node *parser.SyntaxNode) *parser.SyntaxNode {
	role, ok := r.classify(node.Text)
	if !ok {
		return node
	}
	return r.substitute(node, role)
}

// classify returns the role of a referenced name, or false for names that
// are kept as written.
func (r *rewriter) classify(name string) (Role, bool) {
	switch {
	case r.defs.functions.Has(name):
		return RoleFunction, true
	case r.defs.classes.Has(name):
		return RoleClass, true
	case r.defs.aliases.Has(name), isBuiltin(name):
		return RoleVariable, false
	}
	return RoleVariable, true
}

// substitute replaces a leaf with the placeholder of role. Variable names
// are recorded; definition names are collected by the first pass.
func (r *rewriter) substitute(node *parser.SyntaxNode, role Role) *parser.SyntaxNode {
	if role == RoleVariable {
		r.variables.Add(node.Text)
	}
	return node.WithText(role.Placeholder())
}

// rewriteParam substitutes a parameter name. Parameters are variables
// regardless of any function or class with the same name.
func (r *rewriter) rewriteParam(node *parser.SyntaxNode) *parser.SyntaxNode {
	if node.Kind != "identifier" {
		return r.rewrite(node)
	}
	if isBuiltin(node.Text) {
		return node
	}
	return r.substitute(node, RoleVariable)
}

func (r *rewriter) rewriteDefinition(node *parser.SyntaxNode, role Role) *parser.SyntaxNode {
	return r.mapChildren(node, func(c *parser.SyntaxNode) *parser.SyntaxNode {
		switch c.Field {
		case "name":
			if isBuiltin(c.Text) {
				return c
			}
			return c.WithText(role.Placeholder())
		case "parameters":
			return r.rewriteParameters(c)
		}
		return r.rewrite(c)
	})
}

// rewriteParameters handles parameters and lambda_parameters nodes.
func (r *rewriter) rewriteParameters(node *parser.SyntaxNode) *parser.SyntaxNode {
	return r.mapChildren(node, func(c *parser.SyntaxNode) *parser.SyntaxNode {
		switch c.Kind {
		case "identifier":
			return r.rewriteParam(c)
		case "list_splat_pattern", "dictionary_splat_pattern":
			return r.mapChildren(c, r.rewriteParam)
		case "typed_parameter":
			return r.mapChildren(c, func(p *parser.SyntaxNode) *parser.SyntaxNode {
				switch {
				case p.Field == "type":
					return r.rewrite(p)
				case p.Kind == "list_splat_pattern" || p.Kind == "dictionary_splat_pattern":
					return r.mapChildren(p, r.rewriteParam)
				}
				return r.rewriteParam(p)
			})
		case "default_parameter", "typed_default_parameter":
			return r.mapChildren(c, func(p *parser.SyntaxNode) *parser.SyntaxNode {
				if p.Field == "name" {
					return r.rewriteParam(p)
				}
				return r.rewrite(p)
			})
		}
		return r.rewrite(c)
	})
}

// rewriteAttribute substitutes the member name when the receiver is a plain
// name that became a variable or class placeholder.
func (r *rewriter) rewriteAttribute(node *parser.SyntaxNode) *parser.SyntaxNode {
	object := node.ChildByField("object")
	var rewrittenObject *parser.SyntaxNode

	children := make([]*parser.SyntaxNode, len(node.Children))
	for i, c := range node.Children {
		switch c.Field {
		case "object":
			rewrittenObject = r.rewrite(c)
			children[i] = rewrittenObject
		default:
			children[i] = c
		}
	}

	if object == nil || object.Kind != "identifier" || rewrittenObject == nil {
		return node.WithChildren(children)
	}
	if rewrittenObject.Text != VariablePlaceholder && rewrittenObject.Text != ClassPlaceholder {
		return node.WithChildren(children)
	}

	for i, c := range children {
		if c.Field == "attribute" && !isBuiltin(c.Text) {
			children[i] = r.substitute(c, RoleVariable)
		}
	}
	return node.WithChildren(children)
}

// rewriteExceptClause leaves the name bound by "except E as name" alone;
// it is not a name reference in Python's AST.
func (r *rewriter) rewriteExceptClause(node *parser.SyntaxNode) *parser.SyntaxNode {
	afterAs := false
	return r.mapChildren(node, func(c *parser.SyntaxNode) *parser.SyntaxNode {
		switch {
		case c.Kind == "as":
			afterAs = true
			return c
		case afterAs && c.Kind == "identifier":
			afterAs = false
			return c
		case c.Kind == "as_pattern":
			return r.rewriteExceptAsPattern(c)
		}
		afterAs = false
		return r.rewrite(c)
	})
}

func (r *rewriter) rewriteExceptAsPattern(node *parser.SyntaxNode) *parser.SyntaxNode {
	afterAs := false
	return r.mapChildren(node, func(c *parser.SyntaxNode) *parser.SyntaxNode {
		if c.Kind == "as" {
			afterAs = true
			return c
		}
		if afterAs || c.Field == "alias" {
			return c
		}
		return r.rewrite(c)
	})
}

func (r *rewriter) mapChildren(node *parser.SyntaxNode, fn func(*parser.SyntaxNode) *parser.SyntaxNode) *parser.SyntaxNode {
	if node.IsLeaf() {
		return node
	}
	children := make([]*parser.SyntaxNode, len(node.Children))
	for i, c := range node.Children {
		children[i] = fn(c)
	}
	return node.WithChildren(children)
}
