package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/analyzer"
	"github.com/ludo-technologies/codesim/internal/lexer"
	"github.com/ludo-technologies/codesim/internal/normalizer"
	"github.com/ludo-technologies/codesim/internal/version"
	"github.com/rs/zerolog/log"
)

// SimilarityServiceImpl implements domain.CompareService. It holds no
// per-call state and is safe for concurrent use.
type SimilarityServiceImpl struct{}

// NewSimilarityService creates a new similarity service
func NewSimilarityService() *SimilarityServiceImpl {
	return &SimilarityServiceImpl{}
}

// Compare scores the two snippets of req with both metrics. The metrics run
// as two tasks; a snippet that fails to normalize fails the whole call with
// a PARSE_ERROR.
func (s *SimilarityServiceImpl) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	startTime := time.Now()

	tokensA := lexer.Tokenize(req.A.Code)
	tokensB := lexer.Tokenize(req.B.Code)
	if err := checkTokenLimit(req.A, len(tokensA), req.MaxTokens); err != nil {
		return nil, err
	}
	if err := checkTokenLimit(req.B, len(tokensB), req.MaxTokens); err != nil {
		return nil, err
	}

	var scores domain.SimilarityScores
	scores.NGramSize = req.NGramSize
	scores.TokensA = len(tokensA)
	scores.TokensB = len(tokensB)

	tasks := []domain.ExecutableTask{
		NewSimpleTask("subsequence", true, func(ctx context.Context) (interface{}, error) {
			scores.Subsequence = analyzer.SubsequenceSimilarity(tokensA, tokensB)
			return scores.Subsequence, nil
		}),
		NewSimpleTask("ngram", true, func(ctx context.Context) (interface{}, error) {
			score, err := NGramScore(ctx, req.A, req.B, req.NGramSize)
			if err != nil {
				return nil, err
			}
			scores.NGramJaccard = score
			return score, nil
		}),
	}

	executor := NewParallelExecutor()
	executor.SetTimeout(time.Duration(req.TimeoutSeconds) * time.Second)
	if err := executor.Execute(ctx, tasks); err != nil {
		return nil, classifyEngineError(err)
	}

	log.Debug().
		Str("a", req.A.Name).
		Str("b", req.B.Name).
		Float64("subsequence", scores.Subsequence).
		Float64("ngram_jaccard", scores.NGramJaccard).
		Msg("compared snippets")

	return &domain.CompareResponse{
		A:           req.A,
		B:           req.B,
		Scores:      scores,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Duration:    time.Since(startTime).Milliseconds(),
		Version:     version.Version,
	}, nil
}

// NGramScore normalizes both snippets and returns their n-gram Jaccard
// index. Parse failures name the offending snippet.
func NGramScore(ctx context.Context, a, b domain.Snippet, n int) (float64, error) {
	gramsA, err := analyzer.NormalizedNGrams(ctx, a.Code, n)
	if err != nil {
		return 0, wrapNormalizeError(a, err)
	}
	gramsB, err := analyzer.NormalizedNGrams(ctx, b.Code, n)
	if err != nil {
		return 0, wrapNormalizeError(b, err)
	}
	return analyzer.Jaccard(gramsA, gramsB), nil
}

// wrapNormalizeError converts engine errors into domain errors
func wrapNormalizeError(snippet domain.Snippet, err error) error {
	var parseErr *normalizer.ParseError
	if errors.As(err, &parseErr) {
		return domain.NewParseError(snippet.Name, err)
	}
	var sizeErr *analyzer.InvalidSizeError
	if errors.As(err, &sizeErr) {
		return domain.NewInvalidInputError(sizeErr.Error(), err)
	}
	return err
}

// classifyEngineError keeps domain errors visible through the executor's
// wrapping and turns timeouts into analysis errors.
func classifyEngineError(err error) error {
	var domainErr domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.NewAnalysisError("comparison did not finish", err)
	}
	return domain.NewAnalysisError("comparison failed", err)
}

func checkTokenLimit(snippet domain.Snippet, count, limit int) error {
	if limit > 0 && count > limit {
		return domain.NewInvalidInputError(
			fmt.Sprintf("%s has %d tokens, more than the limit of %d", snippet.Name, count, limit), nil)
	}
	return nil
}
