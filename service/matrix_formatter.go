package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/codesim/domain"
)

// MatrixFormatterImpl implements domain.MatrixOutputFormatter
type MatrixFormatterImpl struct {
	utils *FormatUtils
}

// NewMatrixFormatter creates a new matrix formatter
func NewMatrixFormatter() *MatrixFormatterImpl {
	return &MatrixFormatterImpl{utils: NewFormatUtils()}
}

// Write formats a matrix response according to the specified format
func (f *MatrixFormatterImpl) Write(response *domain.MatrixResponse, format domain.OutputFormat, writer io.Writer) error {
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

func (f *MatrixFormatterImpl) writeText(response *domain.MatrixResponse, writer io.Writer) error {
	var b strings.Builder
	b.WriteString(f.utils.FormatMainHeader("Code Similarity Matrix"))

	stats := response.Statistics
	b.WriteString(f.utils.FormatSectionHeader("Summary"))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Run", response.RunID))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Files", stats.FilesAnalyzed))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Pairs", stats.PairsTotal))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Scored", stats.PairsScored))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Skipped", stats.PairsSkipped))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Failed", stats.PairsFailed))
	b.WriteString("\n")

	if len(response.Pairs) == 0 {
		b.WriteString("No pairs to report.\n")
		_, err := io.WriteString(writer, b.String())
		return err
	}

	b.WriteString(f.utils.FormatSectionHeader("Pairs"))
	b.WriteString(f.utils.FormatTableHeader(fmt.Sprintf("%-8s  %-11s  %-7s  %s", "STATUS", "SUBSEQUENCE", "NGRAM", "FILES")))
	for _, p := range response.Pairs {
		switch p.Status {
		case domain.PairScored:
			fmt.Fprintf(&b, "%-8s  %-11.4f  %-7.4f  %s <-> %s\n", p.Status, p.Subsequence, p.NGramJaccard, p.FileA, p.FileB)
		case domain.PairFailed:
			fmt.Fprintf(&b, "%-8s  %-11.4f  %-7s  %s <-> %s\n", p.Status, p.Subsequence, "-", p.FileA, p.FileB)
			fmt.Fprintf(&b, "%10s%s\n", "", p.Error)
		default:
			fmt.Fprintf(&b, "%-8s  %-11s  %-7s  %s <-> %s (estimate %.2f)\n", p.Status, "-", "-", p.FileA, p.FileB, p.Estimate)
		}
	}

	_, err := io.WriteString(writer, b.String())
	return err
}

func (f *MatrixFormatterImpl) writeCSV(response *domain.MatrixResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	header := []string{"file_a", "file_b", "status", "subsequence", "ngram_jaccard", "estimate", "error"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range response.Pairs {
		record := []string{
			p.FileA,
			p.FileB,
			string(p.Status),
			fmt.Sprintf("%.6f", p.Subsequence),
			fmt.Sprintf("%.6f", p.NGramJaccard),
			fmt.Sprintf("%.6f", p.Estimate),
			p.Error,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}
