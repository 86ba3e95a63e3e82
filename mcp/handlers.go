package mcp

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleCompareSnippets handles the compare_snippets tool
func (h *HandlerSet) HandleCompareSnippets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	codeA, ok := args["code_a"].(string)
	if !ok {
		return mcp.NewToolResultError("code_a parameter is required and must be a string"), nil
	}
	codeB, ok := args["code_b"].(string)
	if !ok {
		return mcp.NewToolResultError("code_b parameter is required and must be a string"), nil
	}

	cfg := h.deps.Config()
	req := domain.DefaultCompareRequest()
	req.NGramSize = cfg.NGram.Size
	req.MaxTokens = cfg.Limits.MaxTokens
	req.TimeoutSeconds = cfg.Limits.TimeoutSeconds
	req.OutputFormat = domain.OutputFormatJSON
	// responses are returned, not written
	req.OutputWriter = io.Discard

	if raw, present := args["ngram_size"]; present {
		size, ok := raw.(float64)
		if !ok || size != math.Trunc(size) {
			return mcp.NewToolResultError("ngram_size must be an integer"), nil
		}
		req.NGramSize = int(size)
	}

	req.A = domain.Snippet{Name: "code_a", Code: codeA}
	req.B = domain.Snippet{Name: "code_b", Code: codeB}

	uc, err := h.deps.BuildCompareUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create comparer: %v", err)), nil
	}

	result, err := uc.CompareAndReturn(ctx, *req)
	if err != nil {
		log.Debug().Err(err).Msg("compare_snippets failed")
		return toolError("comparison failed", err), nil
	}

	return jsonResult(result)
}

// HandleNormalizeSnippet handles the normalize_snippet tool
func (h *HandlerSet) HandleNormalizeSnippet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, errResult := codeArgument(request)
	if errResult != nil {
		return errResult, nil
	}

	result, err := h.deps.NormalizeService().Normalize(ctx, domain.Snippet{Name: "code", Code: code})
	if err != nil {
		return toolError("normalization failed", err), nil
	}

	return jsonResult(result)
}

// HandleTokenizeSnippet handles the tokenize_snippet tool
func (h *HandlerSet) HandleTokenizeSnippet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, errResult := codeArgument(request)
	if errResult != nil {
		return errResult, nil
	}

	return jsonResult(h.deps.NormalizeService().Tokenize(domain.Snippet{Name: "code", Code: code}))
}

func codeArgument(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return "", mcp.NewToolResultError("invalid arguments format")
	}
	code, ok := args["code"].(string)
	if !ok {
		return "", mcp.NewToolResultError("code parameter is required and must be a string")
	}
	return code, nil
}

// toolError reports err with its domain code so clients can tell parse
// failures from bad arguments.
func toolError(prefix string, err error) *mcp.CallToolResult {
	if code := domain.ErrorCode(err); code != "" {
		return mcp.NewToolResultError(fmt.Sprintf("%s [%s]: %v", prefix, code, err))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", prefix, err))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	text, err := service.EncodeJSON(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
