package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/codesim/domain"
)

// SubmitFormatterImpl implements domain.SubmitOutputFormatter
type SubmitFormatterImpl struct {
	utils *FormatUtils
}

// NewSubmitFormatter creates a new submit formatter
func NewSubmitFormatter() *SubmitFormatterImpl {
	return &SubmitFormatterImpl{utils: NewFormatUtils()}
}

// Write formats a submit response according to the specified format
func (f *SubmitFormatterImpl) Write(response *domain.SubmitResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		var b strings.Builder
		b.WriteString(f.utils.FormatMainHeader("MOSS Submission"))
		b.WriteString(f.utils.FormatLabel("Language", response.Language))
		b.WriteString(f.utils.FormatLabel("Files", len(response.Files)))
		b.WriteString(f.utils.FormatLabel("Report", response.URL))
		_, err := io.WriteString(writer, b.String())
		return err
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		w := csv.NewWriter(writer)
		records := [][]string{{"url", "language", "files"}, {response.URL, response.Language, strings.Join(response.Files, ";")}}
		if err := w.WriteAll(records); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return nil
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}
