package domain

import (
	"context"
	"io"

	"github.com/ludo-technologies/codesim/internal/constants"
)

// MatrixRequest represents a request to score every pair among many files
type MatrixRequest struct {
	// Input parameters
	Paths           []string `json:"paths"`
	Recursive       bool     `json:"recursive"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`

	// Analysis configuration
	NGramSize          int     `json:"ngram_size"`
	MaxTokens          int     `json:"max_tokens"`
	MaxWorkers         int     `json:"max_workers"`
	TimeoutSeconds     int     `json:"timeout_seconds"`
	PrefilterThreshold float64 `json:"prefilter_threshold"`
	MinScore           float64 `json:"min_score"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path"`
	ShowProgress bool         `json:"show_progress"`

	// Configuration file
	ConfigPath string `json:"config_path"`
}

// Validate validates a matrix request
func (req *MatrixRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewValidationError("paths cannot be empty")
	}
	if req.NGramSize < 1 {
		return NewValidationError("ngram_size must be >= 1")
	}
	if req.MaxTokens < 0 {
		return NewValidationError("max_tokens must be >= 0")
	}
	if req.MaxWorkers < 0 {
		return NewValidationError("max_workers must be >= 0")
	}
	if req.PrefilterThreshold < 0.0 || req.PrefilterThreshold > 1.0 {
		return NewValidationError("prefilter_threshold must be between 0.0 and 1.0")
	}
	if req.MinScore < 0.0 || req.MinScore > 1.0 {
		return NewValidationError("min_score must be between 0.0 and 1.0")
	}
	return nil
}

// DefaultMatrixRequest returns a default matrix request
func DefaultMatrixRequest() *MatrixRequest {
	return &MatrixRequest{
		Paths:              []string{"."},
		Recursive:          true,
		IncludePatterns:    []string{"**/*.py"},
		ExcludePatterns:    []string{},
		NGramSize:          constants.DefaultNGramSize,
		MaxTokens:          constants.DefaultMaxTokens,
		MaxWorkers:         constants.DefaultMaxWorkers,
		TimeoutSeconds:     constants.DefaultTimeoutSeconds,
		PrefilterThreshold: constants.DefaultPrefilterThreshold,
		MinScore:           constants.DefaultMinScore,
		OutputFormat:       OutputFormatText,
	}
}

// PairStatus records what happened to one pair in a matrix run
type PairStatus string

const (
	PairScored  PairStatus = "scored"
	PairSkipped PairStatus = "skipped"
	PairFailed  PairStatus = "failed"
)

// PairResult is one cell of the similarity matrix
type PairResult struct {
	FileA  string     `json:"file_a" yaml:"file_a" csv:"file_a"`
	FileB  string     `json:"file_b" yaml:"file_b" csv:"file_b"`
	Status PairStatus `json:"status" yaml:"status" csv:"status"`

	Subsequence  float64 `json:"subsequence" yaml:"subsequence" csv:"subsequence"`
	NGramJaccard float64 `json:"ngram_jaccard" yaml:"ngram_jaccard" csv:"ngram_jaccard"`
	// Estimate is the MinHash estimate used by the prefilter
	Estimate float64 `json:"estimate" yaml:"estimate" csv:"estimate"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty" csv:"error"`
}

// MatrixStatistics summarizes a matrix run
type MatrixStatistics struct {
	FilesAnalyzed int `json:"files_analyzed" yaml:"files_analyzed"`
	PairsTotal    int `json:"pairs_total" yaml:"pairs_total"`
	PairsScored   int `json:"pairs_scored" yaml:"pairs_scored"`
	PairsSkipped  int `json:"pairs_skipped" yaml:"pairs_skipped"`
	PairsFailed   int `json:"pairs_failed" yaml:"pairs_failed"`
	PairsReported int `json:"pairs_reported" yaml:"pairs_reported"`
}

// MatrixResponse represents the response from a matrix run
type MatrixResponse struct {
	RunID      string           `json:"run_id" yaml:"run_id"`
	Files      []string         `json:"files" yaml:"files"`
	Pairs      []PairResult     `json:"pairs" yaml:"pairs"`
	Statistics MatrixStatistics `json:"statistics" yaml:"statistics"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Duration    int64  `json:"duration_ms" yaml:"duration_ms"`
	Version     string `json:"version" yaml:"version"`
}

// MatrixService scores all pairs among a set of snippets
type MatrixService interface {
	// Analyze scores every pair of snippets
	Analyze(ctx context.Context, snippets []Snippet, req *MatrixRequest) (*MatrixResponse, error)
}

// MatrixOutputFormatter formats matrix results
type MatrixOutputFormatter interface {
	// Write writes the response in the given format
	Write(response *MatrixResponse, format OutputFormat, writer io.Writer) error
}
