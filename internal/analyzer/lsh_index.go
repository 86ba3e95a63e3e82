package analyzer

import (
	"crypto/md5"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/ludo-technologies/codesim/internal/constants"
)

// LSHIndex buckets MinHash signatures by band so that likely-similar
// snippets can be found without comparing every pair.
type LSHIndex struct {
	bands      int
	rows       int
	buckets    map[string][]string          // band key -> snippet ids
	signatures map[string]*MinHashSignature // snippet id -> signature
	mutex      sync.RWMutex
}

// LSHConfig holds configuration parameters for LSH
type LSHConfig struct {
	Bands int
	Rows  int
}

// NewLSHIndex creates a new LSH index with the given configuration
func NewLSHIndex(config LSHConfig) *LSHIndex {
	if config.Bands <= 0 {
		config.Bands = constants.DefaultLSHBands
	}
	if config.Rows <= 0 {
		config.Rows = constants.DefaultLSHRows
	}
	return &LSHIndex{
		bands:      config.Bands,
		rows:       config.Rows,
		buckets:    make(map[string][]string),
		signatures: make(map[string]*MinHashSignature),
	}
}

// Threshold is the similarity at which a pair becomes a candidate with
// probability one half, approximately (1/b)^(1/r).
func (idx *LSHIndex) Threshold() float64 {
	return math.Pow(1.0/float64(idx.bands), 1.0/float64(idx.rows))
}

// Add indexes a snippet signature under id.
func (idx *LSHIndex) Add(id string, signature *MinHashSignature) error {
	if signature == nil {
		return fmt.Errorf("signature cannot be nil")
	}
	if signature.GetNumHashes() < idx.bands*idx.rows {
		return fmt.Errorf("signature has %d hashes, but need at least %d (bands=%d, rows=%d)",
			signature.GetNumHashes(), idx.bands*idx.rows, idx.bands, idx.rows)
	}

	idx.mutex.Lock()
	defer idx.mutex.Unlock()

	idx.signatures[id] = signature
	if signature.isEmpty() {
		// empty n-gram sets are similar to nothing
		return nil
	}
	sigs := signature.GetSignatures()
	for band := 0; band < idx.bands; band++ {
		key := idx.bandKey(sigs, band)
		idx.buckets[key] = append(idx.buckets[key], id)
	}
	return nil
}

func (idx *LSHIndex) bandKey(signatures []uint64, band int) string {
	start := band * idx.rows
	end := start + idx.rows

	data := make([]byte, 0, idx.rows*8)
	for i := start; i < end && i < len(signatures); i++ {
		sig := signatures[i]
		for j := 0; j < 8; j++ {
			data = append(data, byte(sig>>(j*8)))
		}
	}
	return fmt.Sprintf("band_%d_%x", band, md5.Sum(data))
}

// FindCandidates returns the ids sharing at least one band with signature,
// sorted.
func (idx *LSHIndex) FindCandidates(signature *MinHashSignature) []string {
	if signature == nil || signature.GetNumHashes() < idx.bands*idx.rows || signature.isEmpty() {
		return []string{}
	}

	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	set := make(map[string]bool)
	sigs := signature.GetSignatures()
	for band := 0; band < idx.bands; band++ {
		for _, id := range idx.buckets[idx.bandKey(sigs, band)] {
			set[id] = true
		}
	}

	candidates := make([]string, 0, len(set))
	for id := range set {
		candidates = append(candidates, id)
	}
	sort.Strings(candidates)
	return candidates
}

// CandidatePair is an unordered pair of indexed ids, First < Second.
type CandidatePair struct {
	First  string
	Second string
}

// CandidatePairs returns every pair of ids that share a bucket, sorted.
func (idx *LSHIndex) CandidatePairs() []CandidatePair {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	seen := make(map[CandidatePair]bool)
	for _, ids := range idx.buckets {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ids[i], ids[j]
				if a == b {
					continue
				}
				if b < a {
					a, b = b, a
				}
				seen[CandidatePair{First: a, Second: b}] = true
			}
		}
	}

	pairs := make([]CandidatePair, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].First != pairs[j].First {
			return pairs[i].First < pairs[j].First
		}
		return pairs[i].Second < pairs[j].Second
	})
	return pairs
}

// Size returns the number of indexed signatures
func (idx *LSHIndex) Size() int {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()
	return len(idx.signatures)
}
