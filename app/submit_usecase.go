package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/codesim/domain"
	svc "github.com/ludo-technologies/codesim/service"
	"github.com/rs/zerolog/log"
)

// SubmitUseCase uploads files to the external similarity service
type SubmitUseCase struct {
	service    domain.SubmitService
	fileReader domain.FileReader
	formatter  domain.SubmitOutputFormatter
	output     domain.ReportWriter
}

// NewSubmitUseCase creates a new submit use case
func NewSubmitUseCase(
	service domain.SubmitService,
	fileReader domain.FileReader,
	formatter domain.SubmitOutputFormatter,
) *SubmitUseCase {
	return &SubmitUseCase{
		service:    service,
		fileReader: fileReader,
		formatter:  formatter,
		output:     svc.NewFileOutputWriter(nil),
	}
}

// WithOutputWriter replaces the report writer
func (uc *SubmitUseCase) WithOutputWriter(output domain.ReportWriter) *SubmitUseCase {
	uc.output = output
	return uc
}

// SubmitFiles reads paths and submits them in one session. Directories are
// walked recursively with the given include and exclude patterns.
func (uc *SubmitUseCase) SubmitFiles(ctx context.Context, paths, includePatterns, excludePatterns []string, req domain.SubmitRequest) error {
	if len(paths) == 0 {
		return domain.NewInvalidInputError("no input paths specified", nil)
	}

	files, err := ResolveFilePaths(uc.fileReader, paths, true, includePatterns, excludePatterns)
	if err != nil {
		return keepDomainError(err, func(err error) error {
			return domain.NewFileNotFoundError("failed to collect files", err)
		})
	}
	if len(files) == 0 {
		return domain.NewInvalidInputError("no files found in the specified paths", nil)
	}

	snippets, err := uc.fileReader.ReadSnippets(files)
	if err != nil {
		return err
	}
	req.Snippets = snippets
	return uc.Execute(ctx, req)
}

// Execute submits the request's snippets and writes the report location
func (uc *SubmitUseCase) Execute(ctx context.Context, req domain.SubmitRequest) error {
	if req.OutputWriter == nil && req.OutputPath == "" {
		return domain.NewInvalidInputError("invalid request", fmt.Errorf("output writer or output path is required"))
	}

	log.Info().
		Int("files", len(req.Snippets)).
		Str("language", req.Language).
		Str("server", req.Server).
		Msg("submitting to similarity service")

	response, err := uc.service.Submit(ctx, &req)
	if err != nil {
		return keepDomainError(err, func(err error) error {
			return domain.NewProtocolError("submission failed", err)
		})
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
