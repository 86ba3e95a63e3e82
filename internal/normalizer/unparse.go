package normalizer

import (
	"strings"

	"github.com/ludo-technologies/codesim/internal/parser"
)

const indentUnit = "    "

// emitted is a leaf positioned for serialization.
type emitted struct {
	node   *parser.SyntaxNode
	parent string // kind of the enclosing node
	depth  int    // number of enclosing blocks
}

var (
	openers       = map[string]bool{"(": true, "[": true, "{": true}
	closers       = map[string]bool{")": true, "]": true, "}": true}
	noSpaceBefore = map[string]bool{")": true, "]": true, "}": true, ",": true, ":": true, ".": true, ";": true}
	prefixParents = map[string]bool{
		"list_splat":               true,
		"dictionary_splat":         true,
		"list_splat_pattern":       true,
		"dictionary_splat_pattern": true,
		"unary_operator":           true,
		"decorator":                true,
	}
)

// unparse serializes a rewritten tree back to source text. Statement layout
// follows the original line structure and blocks are re-indented with four
// spaces; tokens within a line are joined with canonical spacing. source is
// the comment-free text the tree was parsed from.
func unparse(root *parser.SyntaxNode, source string) string {
	leaves := collectLeaves(root)
	if len(leaves) == 0 {
		return ""
	}

	var b strings.Builder
	bracketDepth := 0
	var prev *emitted

	for i := range leaves {
		cur := &leaves[i]
		text := cur.node.Text

		switch {
		case prev == nil:
			b.WriteString(strings.Repeat(indentUnit, cur.depth))
		case startsLine(prev, cur, bracketDepth, source):
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(indentUnit, cur.depth))
		case needsSpace(prev, cur):
			b.WriteByte(' ')
		}
		b.WriteString(text)

		if !cur.node.Named {
			switch {
			case openers[text]:
				bracketDepth++
			case closers[text] && bracketDepth > 0:
				bracketDepth--
			}
		}
		prev = cur
	}

	return tidyLines(b.String())
}

func collectLeaves(root *parser.SyntaxNode) []emitted {
	var leaves []emitted
	var walk func(node *parser.SyntaxNode, parent string, depth int)
	walk = func(node *parser.SyntaxNode, parent string, depth int) {
		if node.Kind == "string" && !node.IsLeaf() {
			// interpolated strings are emitted whole
			flat := node.WithText(node.SourceText()).WithChildren(nil)
			leaves = append(leaves, emitted{node: flat, parent: parent, depth: depth})
			return
		}
		if node.IsLeaf() {
			if node.Text != "" {
				leaves = append(leaves, emitted{node: node, parent: parent, depth: depth})
			}
			return
		}
		if node.Kind == "block" {
			depth++
		}
		for _, c := range node.Children {
			walk(c, node.Kind, depth)
		}
	}
	walk(root, "", 0)
	return leaves
}

// startsLine reports whether cur begins a new logical line. Rows inside
// brackets or joined by a backslash continuation stay on one line.
func startsLine(prev, cur *emitted, bracketDepth int, source string) bool {
	if cur.node.StartRow <= prev.node.EndRow || bracketDepth > 0 {
		return false
	}
	start, end := int(prev.node.End), int(cur.node.Start)
	if start <= end && end <= len(source) && strings.Contains(source[start:end], `\`) {
		return false
	}
	return true
}

func needsSpace(prev, cur *emitted) bool {
	p, c := prev.node.Text, cur.node.Text

	if !prev.node.Named {
		if openers[p] {
			return false
		}
		if p == "." {
			return c == "import"
		}
		if prefixParents[prev.parent] {
			return false
		}
	}

	if !cur.node.Named && noSpaceBefore[c] {
		return c == "." && pythonKeywords.Has(p)
	}

	// calls and subscripts
	if !cur.node.Named && (c == "(" || c == "[") {
		if prev.node.Named || closers[p] {
			return false
		}
	}

	return true
}

// tidyLines strips trailing whitespace and drops blank lines.
func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
