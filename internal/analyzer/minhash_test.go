package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMinHasher_DefaultSize(t *testing.T) {
	assert.Equal(t, 128, NewMinHasher(0).NumHashes())
	assert.Equal(t, 64, NewMinHasher(64).NumHashes())
}

func TestComputeSignature_Deterministic(t *testing.T) {
	features := []string{"a b c", "b c d", "c d e"}

	sig1 := NewMinHasher(64).ComputeSignature(features)
	sig2 := NewMinHasher(64).ComputeSignature([]string{"c d e", "a b c", "b c d", "a b c"})

	assert.Equal(t, sig1.GetSignatures(), sig2.GetSignatures())
	assert.Equal(t, 64, sig1.GetNumHashes())
}

func TestEstimateJaccardSimilarity(t *testing.T) {
	hasher := NewMinHasher(256)

	t.Run("identical sets", func(t *testing.T) {
		sig := hasher.ComputeSignature([]string{"x", "y", "z"})
		assert.Equal(t, 1.0, hasher.EstimateJaccardSimilarity(sig, sig))
	})

	t.Run("empty sets match nothing", func(t *testing.T) {
		empty := hasher.ComputeSignature(nil)
		sig := hasher.ComputeSignature([]string{"x"})
		assert.Equal(t, 0.0, hasher.EstimateJaccardSimilarity(empty, empty))
		assert.Equal(t, 0.0, hasher.EstimateJaccardSimilarity(empty, sig))
		assert.Equal(t, 0.0, hasher.EstimateJaccardSimilarity(nil, sig))
	})

	t.Run("close to exact jaccard", func(t *testing.T) {
		a := make([]string, 0, 100)
		b := make([]string, 0, 100)
		for i := 0; i < 100; i++ {
			a = append(a, string(rune('A'+i%26))+string(rune('a'+i/26)))
		}
		b = append(b, a[:50]...)
		for i := 0; i < 50; i++ {
			b = append(b, "other"+string(rune('a'+i%26))+string(rune('A'+i/26)))
		}
		// |a∩b| = 50, |a∪b| = 150
		exact := 1.0 / 3.0
		estimate := hasher.EstimateJaccardSimilarity(hasher.ComputeSignature(a), hasher.ComputeSignature(b))
		assert.InDelta(t, exact, estimate, 0.15)
	})
}

func TestComputeNGramSignature(t *testing.T) {
	hasher := NewMinHasher(32)
	grams := BuildNGrams([]string{"a", "b", "c", "d"}, 2)

	sig := hasher.ComputeNGramSignature(grams)
	assert.Equal(t, hasher.ComputeSignature([]string{"c d", "a b", "b c"}).GetSignatures(), sig.GetSignatures())
}
