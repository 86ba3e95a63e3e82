package domain

import (
	"context"
	"io"

	"github.com/ludo-technologies/codesim/internal/constants"
)

// SubmitRequest uploads snippets to the external similarity service
type SubmitRequest struct {
	Snippets []Snippet `json:"snippets"`

	// Credential, resolved by the caller
	UserID string `json:"-"`

	// Service options
	Server         string `json:"server"`
	Port           int    `json:"port"`
	Language       string `json:"language"`
	MaxMatches     int    `json:"max_matches"`
	ShowCount      int    `json:"show_count"`
	Directory      bool   `json:"directory"`
	ExcludeMatches bool   `json:"exclude_matches"`
	Comment        string `json:"comment"`
	TimeoutSeconds int    `json:"timeout_seconds"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path"`
}

// Validate validates a submit request
func (req *SubmitRequest) Validate() error {
	if len(req.Snippets) == 0 {
		return NewValidationError("at least one snippet is required")
	}
	if req.UserID == "" {
		return NewConfigError("MOSS_USER_ID must be set", nil)
	}
	if req.Server == "" {
		return NewValidationError("server cannot be empty")
	}
	if req.Port <= 0 || req.Port > 65535 {
		return NewValidationError("port must be between 1 and 65535")
	}
	if req.MaxMatches < 1 {
		return NewValidationError("max_matches must be >= 1")
	}
	if req.ShowCount < 1 {
		return NewValidationError("show_count must be >= 1")
	}
	return nil
}

// DefaultSubmitRequest returns a default submit request
func DefaultSubmitRequest() *SubmitRequest {
	return &SubmitRequest{
		Server:         constants.DefaultMossServer,
		Port:           constants.DefaultMossPort,
		Language:       constants.DefaultMossLanguage,
		MaxMatches:     constants.DefaultMossMaxMatches,
		ShowCount:      constants.DefaultMossShowCount,
		TimeoutSeconds: constants.DefaultTimeoutSeconds,
		OutputFormat:   OutputFormatText,
	}
}

// SubmitResponse carries the report location returned by the service
type SubmitResponse struct {
	URL       string   `json:"url" yaml:"url"`
	Language  string   `json:"language" yaml:"language"`
	Files     []string `json:"files" yaml:"files"`
	Duration  int64    `json:"duration_ms" yaml:"duration_ms"`
	Submitted string   `json:"submitted_at" yaml:"submitted_at"`
}

// SubmitService talks to the external similarity service
type SubmitService interface {
	Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error)
}

// SubmitOutputFormatter formats submission results
type SubmitOutputFormatter interface {
	Write(response *SubmitResponse, format OutputFormat, writer io.Writer) error
}
