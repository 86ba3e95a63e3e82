package service

import (
	"github.com/ludo-technologies/codesim/domain"
)

// OutputFormatResolver resolves the output format from command-line flags.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine evaluates format flags and returns the selected format and its
// file extension. At most one flag may be set; with none, fallback is used
// (the configured format, or text when fallback is empty).
func (r *OutputFormatResolver) Determine(json, yaml, csv bool, fallback string) (domain.OutputFormat, string, error) {
	formatCount := 0
	var format domain.OutputFormat

	if json {
		formatCount++
		format = domain.OutputFormatJSON
	}
	if yaml {
		formatCount++
		format = domain.OutputFormatYAML
	}
	if csv {
		formatCount++
		format = domain.OutputFormatCSV
	}

	if formatCount > 1 {
		return "", "", domain.NewInvalidInputError("only one output format flag can be specified", nil)
	}
	if formatCount == 0 {
		parsed, err := domain.ParseOutputFormat(fallback)
		if err != nil {
			return "", "", err
		}
		format = parsed
	}
	return format, Extension(format), nil
}

// Extension returns the file extension for format
func Extension(format domain.OutputFormat) string {
	switch format {
	case domain.OutputFormatJSON:
		return "json"
	case domain.OutputFormatYAML:
		return "yaml"
	case domain.OutputFormatCSV:
		return "csv"
	default:
		return "txt"
	}
}
