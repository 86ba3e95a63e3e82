package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/codesim/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	// patterns is consulted in order when an error carries no domain code
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() *ErrorCategorizerImpl {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{"timeout", "timed out", "deadline", "context canceled"}},
		{domain.ErrorCategoryNetwork, []string{"moss", "connection refused", "connection reset", "protocol", "dial"}},
		{domain.ErrorCategoryConfig, []string{"config", "toml", "moss_user_id"}},
		{domain.ErrorCategoryInput, []string{"invalid input", "no files", "file not found", "no such file", "cannot access", "permission denied"}},
		{domain.ErrorCategoryOutput, []string{"write", "output", "cannot create"}},
		{domain.ErrorCategoryProcessing, []string{"parse", "syntax", "normalize", "token"}},
	}
}

// codeCategories maps domain error codes to categories
var codeCategories = map[string]domain.ErrorCategory{
	domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
	domain.ErrCodeInputType:         domain.ErrorCategoryInput,
	domain.ErrCodeFileNotFound:      domain.ErrorCategoryInput,
	domain.ErrCodeParseError:        domain.ErrorCategoryProcessing,
	domain.ErrCodeAnalysisError:     domain.ErrorCategoryProcessing,
	domain.ErrCodeProtocolError:     domain.ErrorCategoryNetwork,
	domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
	domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
	domain.ErrCodeUnsupportedFormat: domain.ErrorCategoryOutput,
}

// Categorize determines the category of an error. Timeouts win over the
// domain code, then the code decides, then message patterns.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := domain.ErrorCategoryUnknown
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		category = domain.ErrorCategoryTimeout
	default:
		if c, ok := codeCategories[domain.ErrorCode(err)]; ok {
			category = c
		} else {
			errMsg := strings.ToLower(err.Error())
			for _, group := range ec.patterns {
				if containsAnyPattern(errMsg, group.patterns) {
					category = group.category
					break
				}
			}
		}
	}

	message := err.Error()
	if category != domain.ErrorCategoryUnknown {
		message = getCategoryMessage(category)
	}
	return &domain.CategorizedError{
		Category: category,
		Message:  message,
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the files exist and are readable",
			"Check --include/--exclude patterns; try: codesim matrix . --verbose",
		},
		domain.ErrorCategoryConfig: {
			"Verify .codesim.toml or the [tool.codesim] table in pyproject.toml",
			"Try: codesim init to generate a valid config file",
			"Set MOSS_USER_ID in the environment or in a .env file before using submit",
		},
		domain.ErrorCategoryTimeout: {
			"Increase [limits] timeout_seconds or pass --timeout",
			"Compare fewer files, or set a prefilter threshold for matrix runs",
		},
		domain.ErrorCategoryNetwork: {
			"Check network access to the MOSS server and port",
			"Check that the language tag is one the server accepts",
			"Retry later; the service may be temporarily unavailable",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions for the output path",
			"Use one of --json, --yaml or --csv, or omit them for text",
		},
		domain.ErrorCategoryProcessing: {
			"The normalizer only accepts syntactically valid Python",
			"Try: python -m py_compile FILE to locate the syntax error",
			"The subsequence score does not need a parse and is still reported",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

func getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read input snippets",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Comparison timed out",
		domain.ErrorCategoryNetwork:    "Similarity service request failed",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error while processing source code",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
