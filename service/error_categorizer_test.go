package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize_DomainCodes(t *testing.T) {
	categorizer := NewErrorCategorizer()

	tests := []struct {
		name         string
		err          error
		wantCategory domain.ErrorCategory
		wantMessage  string
	}{
		{
			name:         "file not found",
			err:          domain.NewFileNotFoundError("a.py", nil),
			wantCategory: domain.ErrorCategoryInput,
			wantMessage:  "Failed to read input snippets",
		},
		{
			name:         "input type",
			err:          domain.NewInputTypeError(42),
			wantCategory: domain.ErrorCategoryInput,
			wantMessage:  "Failed to read input snippets",
		},
		{
			name:         "parse error",
			err:          domain.NewParseError("b.py", errors.New("unexpected input")),
			wantCategory: domain.ErrorCategoryProcessing,
			wantMessage:  "Error while processing source code",
		},
		{
			name:         "protocol error",
			err:          domain.NewProtocolError("language rejected", nil),
			wantCategory: domain.ErrorCategoryNetwork,
			wantMessage:  "Similarity service request failed",
		},
		{
			name:         "config error",
			err:          domain.NewConfigError("MOSS_USER_ID must be set", nil),
			wantCategory: domain.ErrorCategoryConfig,
			wantMessage:  "Configuration file or settings error",
		},
		{
			name:         "unsupported format",
			err:          domain.NewUnsupportedFormatError("html"),
			wantCategory: domain.ErrorCategoryOutput,
			wantMessage:  "Failed to generate or write output",
		},
		{
			name:         "wrapped domain error",
			err:          fmt.Errorf("compare failed: %w", domain.NewParseError("c.py", nil)),
			wantCategory: domain.ErrorCategoryProcessing,
			wantMessage:  "Error while processing source code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := categorizer.Categorize(tt.err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.Equal(t, tt.wantMessage, result.Message)
			assert.Equal(t, tt.err, result.Original)
		})
	}
}

func TestCategorize_Timeouts(t *testing.T) {
	categorizer := NewErrorCategorizer()

	deadline := domain.NewAnalysisError("comparison did not finish", context.DeadlineExceeded)
	assert.Equal(t, domain.ErrorCategoryTimeout, categorizer.Categorize(deadline).Category,
		"context errors win over the domain code")

	canceled := fmt.Errorf("matrix: %w", context.Canceled)
	assert.Equal(t, domain.ErrorCategoryTimeout, categorizer.Categorize(canceled).Category)
}

func TestCategorize_MessagePatterns(t *testing.T) {
	categorizer := NewErrorCategorizer()

	tests := []struct {
		msg  string
		want domain.ErrorCategory
	}{
		{"operation timed out", domain.ErrorCategoryTimeout},
		{"dial tcp 127.0.0.1:7690: connection refused", domain.ErrorCategoryNetwork},
		{"failed to decode TOML", domain.ErrorCategoryConfig},
		{"no such file or directory", domain.ErrorCategoryInput},
		{"cannot create report directory", domain.ErrorCategoryOutput},
		{"syntax error near line 3", domain.ErrorCategoryProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, categorizer.Categorize(errors.New(tt.msg)).Category)
		})
	}
}

func TestCategorize_Unknown(t *testing.T) {
	categorizer := NewErrorCategorizer()

	assert.Nil(t, categorizer.Categorize(nil))

	result := categorizer.Categorize(errors.New("something odd happened"))
	assert.Equal(t, domain.ErrorCategoryUnknown, result.Category)
	assert.Equal(t, "something odd happened", result.Message)
}

func TestGetRecoverySuggestions(t *testing.T) {
	categorizer := NewErrorCategorizer()

	for _, category := range []domain.ErrorCategory{
		domain.ErrorCategoryInput,
		domain.ErrorCategoryConfig,
		domain.ErrorCategoryTimeout,
		domain.ErrorCategoryNetwork,
		domain.ErrorCategoryOutput,
		domain.ErrorCategoryProcessing,
		domain.ErrorCategoryUnknown,
	} {
		assert.NotEmpty(t, categorizer.GetRecoverySuggestions(category), string(category))
	}

	assert.Equal(t, []string{"Check the error message for more details"},
		categorizer.GetRecoverySuggestions(domain.ErrorCategory("Bogus")))
}
