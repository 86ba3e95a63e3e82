package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ludo-technologies/codesim/internal/lexer"
	"github.com/ludo-technologies/codesim/internal/normalizer"
)

// NGramSet is a set of n-grams, each the window's tokens joined by a space.
type NGramSet map[string]struct{}

// Slice returns the n-grams in no particular order.
func (s NGramSet) Slice() []string {
	out := make([]string, 0, len(s))
	for g := range s {
		out = append(out, g)
	}
	return out
}

// InvalidSizeError is returned for an n-gram size below one.
type InvalidSizeError struct {
	Size int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("n-gram size must be at least 1, got %d", e.Size)
}

// BuildNGrams returns the set of contiguous windows of n tokens. Sequences
// shorter than n, and n below one, yield an empty set.
func BuildNGrams(tokens []string, n int) NGramSet {
	set := NGramSet{}
	if n < 1 || len(tokens) < n {
		return set
	}
	for i := 0; i+n <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+n], " ")] = struct{}{}
	}
	return set
}

// Jaccard returns |a∩b| / |a∪b|. If either set is empty the result is 0.0,
// including when both are empty.
func Jaccard(a, b NGramSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	intersection := 0
	for g := range a {
		if _, ok := b[g]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// NormalizedNGrams normalizes code and returns the n-grams of its tokens.
func NormalizedNGrams(ctx context.Context, code string, n int) (NGramSet, error) {
	if n < 1 {
		return nil, &InvalidSizeError{Size: n}
	}
	result, err := normalizer.Normalize(ctx, code)
	if err != nil {
		return nil, err
	}
	return BuildNGrams(lexer.TokenizeStripped(result.Code), n), nil
}

// NGramJaccard normalizes both snippets and returns the Jaccard index of
// their token n-grams. A snippet with fewer than n tokens has no n-grams and
// scores 0.0 against anything, itself included. Normalization errors are
// returned unchanged.
func NGramJaccard(ctx context.Context, codeA, codeB string, n int) (float64, error) {
	gramsA, err := NormalizedNGrams(ctx, codeA, n)
	if err != nil {
		return 0, err
	}
	gramsB, err := NormalizedNGrams(ctx, codeB, n)
	if err != nil {
		return 0, err
	}
	return Jaccard(gramsA, gramsB), nil
}
