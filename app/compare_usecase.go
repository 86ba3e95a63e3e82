package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/codesim/domain"
	svc "github.com/ludo-technologies/codesim/service"
	"github.com/rs/zerolog/log"
)

// CompareUseCase orchestrates scoring two snippets against each other
type CompareUseCase struct {
	service    domain.CompareService
	fileReader domain.FileReader
	formatter  domain.CompareOutputFormatter
	output     domain.ReportWriter
}

// NewCompareUseCase creates a new compare use case
func NewCompareUseCase(
	service domain.CompareService,
	fileReader domain.FileReader,
	formatter domain.CompareOutputFormatter,
) *CompareUseCase {
	return &CompareUseCase{
		service:    service,
		fileReader: fileReader,
		formatter:  formatter,
		output:     svc.NewFileOutputWriter(nil),
	}
}

// ExecuteFiles reads both files and runs Execute on their contents
func (uc *CompareUseCase) ExecuteFiles(ctx context.Context, pathA, pathB string, req domain.CompareRequest) error {
	a, err := uc.fileReader.ReadSnippet(pathA)
	if err != nil {
		return err
	}
	b, err := uc.fileReader.ReadSnippet(pathB)
	if err != nil {
		return err
	}
	req.A = a
	req.B = b
	return uc.Execute(ctx, req)
}

// Execute scores the request's snippets and writes the report
func (uc *CompareUseCase) Execute(ctx context.Context, req domain.CompareRequest) error {
	response, err := uc.CompareAndReturn(ctx, req)
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

// CompareAndReturn scores the request's snippets without formatting
func (uc *CompareUseCase) CompareAndReturn(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	log.Debug().Str("a", req.A.Name).Str("b", req.B.Name).Int("ngram", req.NGramSize).Msg("comparing snippets")

	response, err := uc.service.Compare(ctx, &req)
	if err != nil {
		return nil, keepDomainError(err, func(err error) error {
			return domain.NewAnalysisError("comparison failed", err)
		})
	}
	return response, nil
}

// validateRequest validates the parts of the request the service does not
func (uc *CompareUseCase) validateRequest(req domain.CompareRequest) error {
	if req.A.Name == "" || req.B.Name == "" {
		return fmt.Errorf("both snippets need a name")
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}

// CompareUseCaseBuilder provides a builder pattern for creating CompareUseCase
type CompareUseCaseBuilder struct {
	service    domain.CompareService
	fileReader domain.FileReader
	formatter  domain.CompareOutputFormatter
	output     domain.ReportWriter
}

// NewCompareUseCaseBuilder creates a new builder
func NewCompareUseCaseBuilder() *CompareUseCaseBuilder {
	return &CompareUseCaseBuilder{}
}

// WithService sets the compare service
func (b *CompareUseCaseBuilder) WithService(service domain.CompareService) *CompareUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *CompareUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *CompareUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *CompareUseCaseBuilder) WithFormatter(formatter domain.CompareOutputFormatter) *CompareUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithOutputWriter sets the report writer
func (b *CompareUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *CompareUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the CompareUseCase with the configured dependencies
func (b *CompareUseCaseBuilder) Build() (*CompareUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("compare service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("formatter is required")
	}

	uc := NewCompareUseCase(b.service, b.fileReader, b.formatter)
	if b.output != nil {
		uc.output = b.output
	}
	return uc, nil
}
