package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/codesim/domain"
	svc "github.com/ludo-technologies/codesim/service"
)

// NormalizeUseCase exposes the normalizer and tokenizer on single files
type NormalizeUseCase struct {
	service    domain.NormalizeService
	fileReader domain.FileReader
	formatter  domain.NormalizeOutputFormatter
	output     domain.ReportWriter
}

// NewNormalizeUseCase creates a new normalize use case
func NewNormalizeUseCase(
	service domain.NormalizeService,
	fileReader domain.FileReader,
	formatter domain.NormalizeOutputFormatter,
) *NormalizeUseCase {
	return &NormalizeUseCase{
		service:    service,
		fileReader: fileReader,
		formatter:  formatter,
		output:     svc.NewFileOutputWriter(nil),
	}
}

// WithOutputWriter replaces the report writer
func (uc *NormalizeUseCase) WithOutputWriter(output domain.ReportWriter) *NormalizeUseCase {
	uc.output = output
	return uc
}

// NormalizeFile reads path and writes its normalized form
func (uc *NormalizeUseCase) NormalizeFile(ctx context.Context, path string, req domain.NormalizeRequest) error {
	snippet, err := uc.fileReader.ReadSnippet(path)
	if err != nil {
		return err
	}
	req.Snippet = snippet
	return uc.Normalize(ctx, req)
}

// Normalize writes the normalized form of the request's snippet
func (uc *NormalizeUseCase) Normalize(ctx context.Context, req domain.NormalizeRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return err
	}

	response, err := uc.service.Normalize(ctx, req.Snippet)
	if err != nil {
		return keepDomainError(err, func(err error) error {
			return domain.NewAnalysisError("normalization failed", err)
		})
	}

	return uc.write(req, func(w io.Writer) error {
		return uc.formatter.WriteNormalized(response, req.OutputFormat, w)
	})
}

// TokensFile reads path and writes its token stream
func (uc *NormalizeUseCase) TokensFile(ctx context.Context, path string, req domain.NormalizeRequest) error {
	snippet, err := uc.fileReader.ReadSnippet(path)
	if err != nil {
		return err
	}
	req.Snippet = snippet
	return uc.Tokens(ctx, req)
}

// Tokens writes the comment-free token stream of the request's snippet
func (uc *NormalizeUseCase) Tokens(ctx context.Context, req domain.NormalizeRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.NewAnalysisError("tokenization cancelled", err)
	}

	response := uc.service.Tokenize(req.Snippet)
	return uc.write(req, func(w io.Writer) error {
		return uc.formatter.WriteTokens(response, req.OutputFormat, w)
	})
}

func (uc *NormalizeUseCase) write(req domain.NormalizeRequest, writeFunc func(io.Writer) error) error {
	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	if err := uc.output.Write(out, req.OutputPath, req.OutputFormat, writeFunc); err != nil {
		return keepDomainError(err, func(err error) error {
			return domain.NewOutputError("failed to write output", err)
		})
	}
	return nil
}

func (uc *NormalizeUseCase) validateRequest(req domain.NormalizeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return domain.NewInvalidInputError("invalid request", fmt.Errorf("output writer or output path is required"))
	}
	return nil
}
