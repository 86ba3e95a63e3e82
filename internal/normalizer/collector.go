package normalizer

import "github.com/ludo-technologies/codesim/internal/parser"

// definitions is the read-only result of the first pass.
type definitions struct {
	functions NameSet
	classes   NameSet
	aliases   NameSet
}

// collectDefinitions gathers function and class definition names and the
// aliases bound by import statements. The tree is not modified.
func collectDefinitions(root *parser.SyntaxNode) *definitions {
	defs := &definitions{
		functions: NameSet{},
		classes:   NameSet{},
		aliases:   NameSet{},
	}

	root.Walk(func(node, _ *parser.SyntaxNode) bool {
		switch node.Kind {
		case "function_definition":
			if name := node.ChildByField("name"); name != nil && !isBuiltin(name.Text) {
				defs.functions.Add(name.Text)
			}
		case "class_definition":
			if name := node.ChildByField("name"); name != nil && !isBuiltin(name.Text) {
				defs.classes.Add(name.Text)
			}
		case "aliased_import":
			if alias := node.ChildByField("alias"); alias != nil {
				defs.aliases.Add(alias.Text)
			}
		}
		return true
	})

	return defs
}
