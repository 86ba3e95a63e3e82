package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/codesim/domain"
)

// CompareFormatterImpl implements domain.CompareOutputFormatter
type CompareFormatterImpl struct {
	utils *FormatUtils
}

// NewCompareFormatter creates a new compare formatter
func NewCompareFormatter() *CompareFormatterImpl {
	return &CompareFormatterImpl{utils: NewFormatUtils()}
}

// Write formats a compare response according to the specified format
func (f *CompareFormatterImpl) Write(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.writeCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *CompareFormatterImpl) writeText(response *domain.CompareResponse, writer io.Writer) error {
	var b strings.Builder
	b.WriteString(f.utils.FormatMainHeader("Code Similarity Report"))
	b.WriteString(f.utils.FormatLabel("Snippet A", response.A.Name))
	b.WriteString(f.utils.FormatLabel("Snippet B", response.B.Name))
	b.WriteString(f.utils.FormatLabel("Tokens", fmt.Sprintf("%d / %d", response.Scores.TokensA, response.Scores.TokensB)))
	b.WriteString("\n")
	b.WriteString(f.utils.FormatSectionHeader("Scores"))
	b.WriteString(f.utils.FormatLabel("Subsequence (LCS)", f.utils.FormatScore(response.Scores.Subsequence)))
	b.WriteString(f.utils.FormatLabel(fmt.Sprintf("%d-gram Jaccard", response.Scores.NGramSize), f.utils.FormatScore(response.Scores.NGramJaccard)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Generated at %s in %dms\n", response.GeneratedAt, response.Duration))

	_, err := io.WriteString(writer, b.String())
	return err
}

func (f *CompareFormatterImpl) writeCSV(response *domain.CompareResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	records := [][]string{
		{"snippet_a", "snippet_b", "subsequence", "ngram_jaccard", "ngram_size", "tokens_a", "tokens_b"},
		{
			response.A.Name,
			response.B.Name,
			fmt.Sprintf("%.6f", response.Scores.Subsequence),
			fmt.Sprintf("%.6f", response.Scores.NGramJaccard),
			fmt.Sprintf("%d", response.Scores.NGramSize),
			fmt.Sprintf("%d", response.Scores.TokensA),
			fmt.Sprintf("%d", response.Scores.TokensB),
		},
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
