package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/codesim/domain"
	svc "github.com/ludo-technologies/codesim/service"
	"github.com/rs/zerolog/log"
)

// MatrixUseCase orchestrates all-pairs scoring across many files
type MatrixUseCase struct {
	service    domain.MatrixService
	fileReader domain.FileReader
	formatter  domain.MatrixOutputFormatter
	output     domain.ReportWriter
}

// NewMatrixUseCase creates a new matrix use case
func NewMatrixUseCase(
	service domain.MatrixService,
	fileReader domain.FileReader,
	formatter domain.MatrixOutputFormatter,
) *MatrixUseCase {
	return &MatrixUseCase{
		service:    service,
		fileReader: fileReader,
		formatter:  formatter,
		output:     svc.NewFileOutputWriter(nil),
	}
}

// prepareSnippets validates the request, resolves the file list and reads
// every file.
func (uc *MatrixUseCase) prepareSnippets(req domain.MatrixRequest) ([]domain.Snippet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return nil, domain.NewInvalidInputError("invalid request", fmt.Errorf("output writer or output path is required"))
	}

	files, err := ResolveFilePaths(
		uc.fileReader,
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return nil, keepDomainError(err, func(err error) error {
			return domain.NewFileNotFoundError("failed to collect files", err)
		})
	}

	if len(files) < 2 {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("at least two files are needed for a matrix, found %d", len(files)), nil)
	}

	log.Debug().Int("files", len(files)).Msg("collected matrix files")

	return uc.fileReader.ReadSnippets(files)
}

// Execute scores all pairs and writes the report
func (uc *MatrixUseCase) Execute(ctx context.Context, req domain.MatrixRequest) error {
	response, err := uc.AnalyzeAndReturn(ctx, req)
	if err != nil {
		return err
	}

	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	if err := uc.output.Write(out, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	}); err != nil {
		return keepDomainError(err, func(err error) error {
			return domain.NewOutputError("failed to write output", err)
		})
	}

	return nil
}

// AnalyzeAndReturn scores all pairs and returns the response without formatting
func (uc *MatrixUseCase) AnalyzeAndReturn(ctx context.Context, req domain.MatrixRequest) (*domain.MatrixResponse, error) {
	snippets, err := uc.prepareSnippets(req)
	if err != nil {
		return nil, err
	}

	response, err := uc.service.Analyze(ctx, snippets, &req)
	if err != nil {
		return nil, keepDomainError(err, func(err error) error {
			return domain.NewAnalysisError("matrix analysis failed", err)
		})
	}

	log.Info().
		Str("run_id", response.RunID).
		Int("scored", response.Statistics.PairsScored).
		Int("skipped", response.Statistics.PairsSkipped).
		Int("failed", response.Statistics.PairsFailed).
		Msg("matrix complete")

	return response, nil
}

// MatrixUseCaseBuilder provides a builder pattern for creating MatrixUseCase
type MatrixUseCaseBuilder struct {
	service    domain.MatrixService
	fileReader domain.FileReader
	formatter  domain.MatrixOutputFormatter
	output     domain.ReportWriter
}

// NewMatrixUseCaseBuilder creates a new builder
func NewMatrixUseCaseBuilder() *MatrixUseCaseBuilder {
	return &MatrixUseCaseBuilder{}
}

// WithService sets the matrix service
func (b *MatrixUseCaseBuilder) WithService(service domain.MatrixService) *MatrixUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *MatrixUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *MatrixUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *MatrixUseCaseBuilder) WithFormatter(formatter domain.MatrixOutputFormatter) *MatrixUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithOutputWriter sets the report writer
func (b *MatrixUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *MatrixUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the MatrixUseCase with the configured dependencies
func (b *MatrixUseCaseBuilder) Build() (*MatrixUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("matrix service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("formatter is required")
	}

	uc := NewMatrixUseCase(b.service, b.fileReader, b.formatter)
	if b.output != nil {
		uc.output = b.output
	}
	return uc, nil
}
