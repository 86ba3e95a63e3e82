package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLSHIndex_RejectsShortSignatures(t *testing.T) {
	idx := NewLSHIndex(LSHConfig{Bands: 32, Rows: 4})
	sig := NewMinHasher(64).ComputeSignature([]string{"a"})

	assert.Error(t, idx.Add("short", sig))
	assert.Error(t, idx.Add("nil", nil))
	assert.Equal(t, 0, idx.Size())
}

func TestLSHIndex_CandidatePairs(t *testing.T) {
	hasher := NewMinHasher(128)
	idx := NewLSHIndex(LSHConfig{Bands: 32, Rows: 4})

	shared := []string{"a b", "b c", "c d", "d e", "e f", "f g", "g h", "h i"}
	require.NoError(t, idx.Add("one.py", hasher.ComputeSignature(shared)))
	require.NoError(t, idx.Add("two.py", hasher.ComputeSignature(shared)))
	require.NoError(t, idx.Add("three.py", hasher.ComputeSignature([]string{"p q", "q r", "r s", "s t"})))
	require.NoError(t, idx.Add("empty.py", hasher.ComputeSignature(nil)))

	assert.Equal(t, 4, idx.Size())

	pairs := idx.CandidatePairs()
	assert.Contains(t, pairs, CandidatePair{First: "one.py", Second: "two.py"})
	for _, p := range pairs {
		assert.Less(t, p.First, p.Second)
		assert.NotEqual(t, "empty.py", p.First)
		assert.NotEqual(t, "empty.py", p.Second)
	}

	assert.Equal(t, []string{"one.py", "two.py"}, idx.FindCandidates(hasher.ComputeSignature(shared)))
	assert.Empty(t, idx.FindCandidates(hasher.ComputeSignature(nil)))
}

func TestLSHIndex_Threshold(t *testing.T) {
	idx := NewLSHIndex(LSHConfig{})
	assert.InDelta(t, 0.42, idx.Threshold(), 0.01)
}
