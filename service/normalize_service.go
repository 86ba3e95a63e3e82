package service

import (
	"context"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/lexer"
	"github.com/ludo-technologies/codesim/internal/normalizer"
)

// NormalizeServiceImpl implements domain.NormalizeService
type NormalizeServiceImpl struct {
	normalizer *normalizer.Normalizer
}

// NewNormalizeService creates a new normalize service
func NewNormalizeService() *NormalizeServiceImpl {
	return &NormalizeServiceImpl{normalizer: normalizer.New()}
}

// Normalize rewrites the snippet with role placeholders
func (s *NormalizeServiceImpl) Normalize(ctx context.Context, snippet domain.Snippet) (*domain.NormalizeResponse, error) {
	result, err := s.normalizer.Normalize(ctx, snippet.Code)
	if err != nil {
		return nil, wrapNormalizeError(snippet, err)
	}
	return &domain.NormalizeResponse{
		Name:      snippet.Name,
		Code:      result.Code,
		Tokens:    lexer.TokenizeStripped(result.Code),
		Variables: result.Symbols.Variables.Sorted(),
		Functions: result.Symbols.Functions.Sorted(),
		Classes:   result.Symbols.Classes.Sorted(),
	}, nil
}

// Tokenize returns the comment-free token stream of the snippet
func (s *NormalizeServiceImpl) Tokenize(snippet domain.Snippet) *domain.TokensResponse {
	tokens := lexer.Tokenize(snippet.Code)
	return &domain.TokensResponse{
		Name:   snippet.Name,
		Count:  len(tokens),
		Tokens: tokens,
	}
}
