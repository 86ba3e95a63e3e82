package domain

import (
	"context"
	"io"
)

// NormalizeRequest asks for the normalized form or the token stream of one
// snippet.
type NormalizeRequest struct {
	Snippet Snippet `json:"snippet"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path"`
}

// Validate validates a normalize request
func (req *NormalizeRequest) Validate() error {
	if req.Snippet.Name == "" {
		return NewValidationError("snippet name cannot be empty")
	}
	return nil
}

// NormalizeResponse is a normalized snippet with the names it abstracted
type NormalizeResponse struct {
	Name      string   `json:"name" yaml:"name"`
	Code      string   `json:"code" yaml:"code"`
	Tokens    []string `json:"tokens" yaml:"tokens"`
	Variables []string `json:"variables" yaml:"variables"`
	Functions []string `json:"functions" yaml:"functions"`
	Classes   []string `json:"classes" yaml:"classes"`
}

// TokensResponse is the lexical token stream of a snippet, comments removed
type TokensResponse struct {
	Name   string   `json:"name" yaml:"name"`
	Count  int      `json:"count" yaml:"count"`
	Tokens []string `json:"tokens" yaml:"tokens"`
}

// NormalizeService exposes the front end of the engine
type NormalizeService interface {
	// Normalize abstracts user-defined names in a Python snippet
	Normalize(ctx context.Context, snippet Snippet) (*NormalizeResponse, error)

	// Tokenize returns the lexical tokens of any snippet
	Tokenize(snippet Snippet) *TokensResponse
}

// NormalizeOutputFormatter formats normalize and tokens results
type NormalizeOutputFormatter interface {
	WriteNormalized(response *NormalizeResponse, format OutputFormat, writer io.Writer) error
	WriteTokens(response *TokensResponse, format OutputFormat, writer io.Writer) error
}
