package domain

import (
	"context"
	"io"

	"github.com/ludo-technologies/codesim/internal/constants"
)

// Snippet is one named piece of source code.
type Snippet struct {
	Name string `json:"name" yaml:"name"`
	Code string `json:"-" yaml:"-"`
}

// CompareRequest represents a request to score two snippets against each other
type CompareRequest struct {
	// Input parameters
	A Snippet `json:"a"`
	B Snippet `json:"b"`

	// Analysis configuration
	NGramSize      int `json:"ngram_size"`
	MaxTokens      int `json:"max_tokens"`
	TimeoutSeconds int `json:"timeout_seconds"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path"`

	// Configuration file
	ConfigPath string `json:"config_path"`
}

// Validate validates a compare request
func (req *CompareRequest) Validate() error {
	if req.NGramSize < 1 {
		return NewValidationError("ngram_size must be >= 1")
	}
	if req.MaxTokens < 0 {
		return NewValidationError("max_tokens must be >= 0")
	}
	if req.TimeoutSeconds < 0 {
		return NewValidationError("timeout_seconds must be >= 0")
	}
	return nil
}

// DefaultCompareRequest returns a default compare request
func DefaultCompareRequest() *CompareRequest {
	return &CompareRequest{
		NGramSize:      constants.DefaultNGramSize,
		MaxTokens:      constants.DefaultMaxTokens,
		TimeoutSeconds: constants.DefaultTimeoutSeconds,
		OutputFormat:   OutputFormatText,
	}
}

// SimilarityScores holds the two independent metrics for one pair.
// The engine never combines them into a single verdict.
type SimilarityScores struct {
	Subsequence  float64 `json:"subsequence" yaml:"subsequence" csv:"subsequence"`
	NGramJaccard float64 `json:"ngram_jaccard" yaml:"ngram_jaccard" csv:"ngram_jaccard"`
	NGramSize    int     `json:"ngram_size" yaml:"ngram_size" csv:"ngram_size"`
	TokensA      int     `json:"tokens_a" yaml:"tokens_a" csv:"tokens_a"`
	TokensB      int     `json:"tokens_b" yaml:"tokens_b" csv:"tokens_b"`
}

// CompareResponse represents the response from a pairwise comparison
type CompareResponse struct {
	A      Snippet          `json:"a" yaml:"a"`
	B      Snippet          `json:"b" yaml:"b"`
	Scores SimilarityScores `json:"scores" yaml:"scores"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Duration    int64  `json:"duration_ms" yaml:"duration_ms"`
	Version     string `json:"version" yaml:"version"`
}

// CompareService scores pairs of snippets
type CompareService interface {
	// Compare runs both metrics on the request's snippets
	Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error)
}

// CompareOutputFormatter formats comparison results
type CompareOutputFormatter interface {
	// Write writes the response in the given format
	Write(response *CompareResponse, format OutputFormat, writer io.Writer) error
}
