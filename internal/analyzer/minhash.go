package analyzer

import (
	"hash/fnv"
	"math"
	"math/rand"
)

const defaultNumHashes = 128

// MinHashSignature is a fixed-length sketch of a feature set.
type MinHashSignature struct {
	signatures []uint64
}

// GetSignatures returns the signature vector
func (s *MinHashSignature) GetSignatures() []uint64 { return s.signatures }

// GetNumHashes returns the signature length
func (s *MinHashSignature) GetNumHashes() int { return len(s.signatures) }

// MinHasher computes MinHash signatures of n-gram sets. Its hash family is
// derived from a fixed seed, so signatures are comparable across runs.
type MinHasher struct {
	a []uint64
	b []uint64
}

// NewMinHasher creates a MinHasher with numHashes functions (default 128 if invalid)
func NewMinHasher(numHashes int) *MinHasher {
	if numHashes <= 0 {
		numHashes = defaultNumHashes
	}
	// h_i(x) = (a_i * x) ^ b_i with odd a_i
	rng := rand.New(rand.NewSource(0x5eed_1234_cafe_babe))
	m := &MinHasher{
		a: make([]uint64, numHashes),
		b: make([]uint64, numHashes),
	}
	for i := 0; i < numHashes; i++ {
		m.a[i] = rng.Uint64() | 1
		m.b[i] = rng.Uint64()
	}
	return m
}

// NumHashes returns the signature length this hasher produces.
func (m *MinHasher) NumHashes() int { return len(m.a) }

// ComputeSignature computes the signature of a feature set. Duplicate
// features are ignored. The empty set has an all-zero signature, which
// EstimateJaccardSimilarity treats as matching nothing.
func (m *MinHasher) ComputeSignature(features []string) *MinHashSignature {
	sig := make([]uint64, len(m.a))
	if len(features) == 0 {
		return &MinHashSignature{signatures: sig}
	}

	seen := make(map[string]struct{}, len(features))
	base := make([]uint64, 0, len(features))
	for _, f := range features {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		base = append(base, hash64(f))
	}

	for i := range sig {
		ai, bi := m.a[i], m.b[i]
		minv := uint64(math.MaxUint64)
		for _, x := range base {
			if v := (ai*x)^bi + ai + bi; v < minv {
				minv = v
			}
		}
		sig[i] = minv
	}
	return &MinHashSignature{signatures: sig}
}

// ComputeNGramSignature is ComputeSignature over an n-gram set.
func (m *MinHasher) ComputeNGramSignature(grams NGramSet) *MinHashSignature {
	return m.ComputeSignature(grams.Slice())
}

// EstimateJaccardSimilarity estimates Jaccard similarity via signature
// agreement. Empty-set signatures estimate 0.0, like Jaccard itself.
func (m *MinHasher) EstimateJaccardSimilarity(sig1, sig2 *MinHashSignature) float64 {
	if sig1 == nil || sig2 == nil || sig1.isEmpty() || sig2.isEmpty() {
		return 0.0
	}
	n := minInt(len(sig1.signatures), len(sig2.signatures))
	if n == 0 {
		return 0.0
	}
	match := 0
	for i := 0; i < n; i++ {
		if sig1.signatures[i] == sig2.signatures[i] {
			match++
		}
	}
	return float64(match) / float64(n)
}

func (s *MinHashSignature) isEmpty() bool {
	for _, v := range s.signatures {
		if v != 0 {
			return false
		}
	}
	return true
}

func hash64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
