package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/ludo-technologies/codesim/internal/normalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accumulate = `
def total(values):
    acc = 0
    for v in values:
        acc += v
    return acc
`

const accumulateRenamed = `
def sum_all(nums):
    s = 0
    for n in nums:
        s += n
    return s
`

func TestBuildNGrams(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		n      int
		want   NGramSet
	}{
		{
			name:   "bigrams with repeat",
			tokens: []string{"a", "b", "c", "a", "b"},
			n:      2,
			want:   NGramSet{"a b": {}, "b c": {}, "c a": {}},
		},
		{
			name:   "exact length",
			tokens: []string{"x", "y", "z"},
			n:      3,
			want:   NGramSet{"x y z": {}},
		},
		{
			name:   "shorter than n",
			tokens: []string{"x", "y"},
			n:      3,
			want:   NGramSet{},
		},
		{
			name:   "unigrams",
			tokens: []string{"x", "x"},
			n:      1,
			want:   NGramSet{"x": {}},
		},
		{
			name:   "invalid size",
			tokens: []string{"x"},
			n:      0,
			want:   NGramSet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildNGrams(tt.tokens, tt.n))
		})
	}
}

func TestJaccard(t *testing.T) {
	a := NGramSet{"a": {}, "b": {}, "c": {}}
	b := NGramSet{"b": {}, "c": {}, "d": {}}

	assert.InDelta(t, 0.5, Jaccard(a, b), 1e-9)
	assert.Equal(t, Jaccard(a, b), Jaccard(b, a))
	assert.Equal(t, 1.0, Jaccard(a, a))
	assert.Equal(t, 0.0, Jaccard(a, NGramSet{}))
	assert.Equal(t, 0.0, Jaccard(NGramSet{}, NGramSet{}))
}

func TestNGramJaccard(t *testing.T) {
	ctx := context.Background()

	t.Run("renaming invariance", func(t *testing.T) {
		score, err := NGramJaccard(ctx, accumulate, accumulateRenamed, 3)
		require.NoError(t, err)
		assert.Equal(t, 1.0, score)

		assert.Less(t, SubsequenceScore(accumulate, accumulateRenamed), 1.0)
	})

	t.Run("renaming invariance through f-strings", func(t *testing.T) {
		greet := "def greet(name):\n    msg = f\"hello {name}\"\n    return msg"
		welcome := "def welcome(who):\n    text = f\"hello {who}\"\n    return text"
		score, err := NGramJaccard(ctx, greet, welcome, 3)
		require.NoError(t, err)
		assert.Equal(t, 1.0, score)
	})

	t.Run("identity", func(t *testing.T) {
		score, err := NGramJaccard(ctx, "x = 1", "x = 1", 3)
		require.NoError(t, err)
		assert.Equal(t, 1.0, score)
	})

	t.Run("identity gap below n tokens", func(t *testing.T) {
		score, err := NGramJaccard(ctx, "x = 1", "x = 1", 10)
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("empty floor", func(t *testing.T) {
		score, err := NGramJaccard(ctx, "", accumulate, 3)
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("symmetry and bounds", func(t *testing.T) {
		other := "def f(a):\n    return [x * 2 for x in a]\n"
		ab, err := NGramJaccard(ctx, accumulate, other, 3)
		require.NoError(t, err)
		ba, err := NGramJaccard(ctx, other, accumulate, 3)
		require.NoError(t, err)

		assert.Equal(t, ab, ba)
		assert.GreaterOrEqual(t, ab, 0.0)
		assert.Less(t, ab, 1.0)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := NGramJaccard(ctx, accumulate, accumulate, 0)
		var sizeErr *InvalidSizeError
		require.True(t, errors.As(err, &sizeErr))
		assert.Equal(t, 0, sizeErr.Size)
	})

	t.Run("parse failure propagates", func(t *testing.T) {
		_, err := NGramJaccard(ctx, accumulate, "def broken(:", 3)
		var parseErr *normalizer.ParseError
		assert.True(t, errors.As(err, &parseErr))
	})
}
