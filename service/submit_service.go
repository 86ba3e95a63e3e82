package service

import (
	"context"
	"errors"
	"time"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/moss"
	"github.com/rs/zerolog/log"
)

// SubmitServiceImpl implements domain.SubmitService on top of the moss client
type SubmitServiceImpl struct {
	onUpload moss.UploadHook
}

// NewSubmitService creates a submit service. onUpload may be nil.
func NewSubmitService(onUpload moss.UploadHook) *SubmitServiceImpl {
	return &SubmitServiceImpl{onUpload: onUpload}
}

// Submit uploads every snippet in one session and returns the report URL
func (s *SubmitServiceImpl) Submit(ctx context.Context, req *domain.SubmitRequest) (*domain.SubmitResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	startTime := time.Now()

	options := moss.Options{
		Language:       req.Language,
		MaxMatches:     req.MaxMatches,
		ShowCount:      req.ShowCount,
		Directory:      req.Directory,
		ExcludeMatches: req.ExcludeMatches,
		Comment:        req.Comment,
	}
	client, err := moss.NewClient(moss.Config{
		Server:  req.Server,
		Port:    req.Port,
		UserID:  req.UserID,
		Options: options,
	})
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if req.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	files := make([]moss.File, len(req.Snippets))
	names := make([]string, len(req.Snippets))
	for i, snippet := range req.Snippets {
		files[i] = moss.File{Name: snippet.Name, Content: []byte(snippet.Code)}
		names[i] = snippet.Name
	}

	hook := func(index int, name string, size int) {
		log.Info().Int("index", index).Str("name", name).Int("bytes", size).Msg("sent snippet")
		if s.onUpload != nil {
			s.onUpload(index, name, size)
		}
	}

	reportURL, err := client.Submit(ctx, files, hook)
	if err != nil {
		var protocolErr *moss.ProtocolError
		if errors.As(err, &protocolErr) {
			return nil, domain.NewProtocolError("similarity service request failed", err)
		}
		return nil, domain.NewAnalysisError("submission failed", err)
	}

	return &domain.SubmitResponse{
		URL:       reportURL,
		Language:  req.Language,
		Files:     names,
		Duration:  time.Since(startTime).Milliseconds(),
		Submitted: time.Now().Format(time.RFC3339),
	}, nil
}
