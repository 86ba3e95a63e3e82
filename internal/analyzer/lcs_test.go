package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestLCSLength(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want int
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"a"}, nil, 0},
		{"identical", []string{"a", "b", "c"}, []string{"a", "b", "c"}, 3},
		{"disjoint", []string{"a", "b"}, []string{"c", "d"}, 0},
		{"interleaved", []string{"a", "b", "c", "d"}, []string{"a", "c", "d"}, 3},
		{"classic", []string{"A", "B", "C", "B", "D", "A", "B"}, []string{"B", "D", "C", "A", "B", "A"}, 4},
		{"duplicates", []string{"x", "x", "x"}, []string{"x", "x"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LCSLength(tt.a, tt.b))
			assert.Equal(t, tt.want, LCSLength(tt.b, tt.a))
		})
	}
}

func TestSubsequenceSimilarity(t *testing.T) {
	assert.Equal(t, 0.0, SubsequenceSimilarity(nil, nil))
	assert.Equal(t, 0.0, SubsequenceSimilarity([]string{"a"}, nil))
	assert.Equal(t, 1.0, SubsequenceSimilarity([]string{"a", "b"}, []string{"a", "b"}))
	// L=2, m+n=6
	assert.InDelta(t, 2.0/3.0, SubsequenceSimilarity([]string{"a", "b", "c"}, []string{"a", "x", "c"}), 1e-9)
}

func TestSubsequenceScore(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		assert.Equal(t, 1.0, SubsequenceScore("int x = 1;", "int x = 1;"))
	})

	t.Run("empty floor", func(t *testing.T) {
		assert.Equal(t, 0.0, SubsequenceScore("", ""))
		assert.Equal(t, 0.0, SubsequenceScore("   ", "# only a comment"))
		assert.Equal(t, 0.0, SubsequenceScore("", "int x = 1;"))
	})

	t.Run("comments ignored", func(t *testing.T) {
		assert.Equal(t, 1.0, SubsequenceScore("x = 1  # set x", "x = 1"))
	})

	t.Run("symmetry and bounds", func(t *testing.T) {
		pairs := [][2]string{
			{"a = b + c", "a = c + b"},
			{"for i in range(10): print(i)", "while True: break"},
			{"int main() { return 0; }", "def main(): return 0"},
		}
		for _, p := range pairs {
			ab := SubsequenceScore(p[0], p[1])
			ba := SubsequenceScore(p[1], p[0])
			assert.Equal(t, ab, ba)
			assert.GreaterOrEqual(t, ab, 0.0)
			assert.LessOrEqual(t, ab, 1.0)
		}
	})
}

func TestSubsequenceScoreMergeSortVariants(t *testing.T) {
	base := loadFixture(t, "merge_sort.cpp")

	t.Run("arithmetic identity padding", func(t *testing.T) {
		score := SubsequenceScore(base, loadFixture(t, "merge_sort_padded.cpp"))
		assert.Greater(t, score, 0.6)
		assert.Less(t, score, 1.0)
	})

	t.Run("control flow reordering", func(t *testing.T) {
		score := SubsequenceScore(base, loadFixture(t, "merge_sort_reordered.cpp"))
		assert.GreaterOrEqual(t, score, 0.7)
		assert.Less(t, score, 1.0)
	})

	t.Run("array wrapping", func(t *testing.T) {
		wrapped := loadFixture(t, "merge_sort_wrapped.cpp")
		score := SubsequenceScore(base, wrapped)
		assert.Greater(t, score, 0.65)
		assert.Less(t, score, 0.75)
		assert.InDelta(t, score, SubsequenceScore(wrapped, base), 1e-12)
	})

	t.Run("extra array dimensions", func(t *testing.T) {
		score := SubsequenceScore(base, loadFixture(t, "merge_sort_dimensions.cpp"))
		assert.Greater(t, score, 0.55)
		assert.Less(t, score, 0.65)
	})

	t.Run("deeper wrapping scores lower", func(t *testing.T) {
		wrapped := SubsequenceScore(base, loadFixture(t, "merge_sort_wrapped.cpp"))
		dimensions := SubsequenceScore(base, loadFixture(t, "merge_sort_dimensions.cpp"))
		assert.Less(t, dimensions, wrapped)
	})
}
