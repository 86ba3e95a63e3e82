package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all codesim MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	// Tool 1: compare_snippets - both similarity metrics for two snippets
	s.AddTool(mcp.NewTool("compare_snippets",
		mcp.WithDescription("Score two code snippets with subsequence similarity (any language) and n-gram Jaccard over normalized Python"),
		mcp.WithString("code_a",
			mcp.Required(),
			mcp.Description("First snippet")),
		mcp.WithString("code_b",
			mcp.Required(),
			mcp.Description("Second snippet")),
		mcp.WithNumber("ngram_size",
			mcp.Description("N-gram window length, at least 1 (default: 3 or the configured size)")),
	), h.HandleCompareSnippets)

	// Tool 2: normalize_snippet - abstract user-defined names
	s.AddTool(mcp.NewTool("normalize_snippet",
		mcp.WithDescription("Rewrite a Python snippet with user-defined names replaced by <VAR>, <FUNC> and <CLASS>"),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Python source code")),
	), h.HandleNormalizeSnippet)

	// Tool 3: tokenize_snippet - lexical tokens without comments
	s.AddTool(mcp.NewTool("tokenize_snippet",
		mcp.WithDescription("Split a snippet of any language into lexical tokens after removing comments and docstrings"),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Source code")),
	), h.HandleTokenizeSnippet)
}
