package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/codesim/domain"
)

// NormalizeFormatterImpl implements domain.NormalizeOutputFormatter
type NormalizeFormatterImpl struct{}

// NewNormalizeFormatter creates a new normalize formatter
func NewNormalizeFormatter() *NormalizeFormatterImpl {
	return &NormalizeFormatterImpl{}
}

// WriteNormalized writes a normalized snippet. Text output is the rewritten
// source alone, so it can be piped into other tools.
func (f *NormalizeFormatterImpl) WriteNormalized(response *domain.NormalizeResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		code := response.Code
		if code != "" && !strings.HasSuffix(code, "\n") {
			code += "\n"
		}
		_, err := io.WriteString(writer, code)
		return err
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		w := csv.NewWriter(writer)
		records := [][]string{{"role", "name"}}
		for _, name := range response.Variables {
			records = append(records, []string{"variable", name})
		}
		for _, name := range response.Functions {
			records = append(records, []string{"function", name})
		}
		for _, name := range response.Classes {
			records = append(records, []string{"class", name})
		}
		if err := w.WriteAll(records); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return nil
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteTokens writes a token stream, one token per line in text mode
func (f *NormalizeFormatterImpl) WriteTokens(response *domain.TokensResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		var b strings.Builder
		for _, tok := range response.Tokens {
			b.WriteString(tok)
			b.WriteByte('\n')
		}
		_, err := io.WriteString(writer, b.String())
		return err
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		w := csv.NewWriter(writer)
		records := [][]string{{"index", "token"}}
		for i, tok := range response.Tokens {
			records = append(records, []string{fmt.Sprintf("%d", i), tok})
		}
		if err := w.WriteAll(records); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return nil
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}
