// Package analyzer implements the two similarity metrics over token
// sequences: a longest-common-subsequence ratio over raw lexical tokens and
// an n-gram Jaccard index over name-normalized tokens. Both are pure and
// deterministic; combining them is left to callers.
package analyzer

import "github.com/ludo-technologies/codesim/internal/lexer"

// LCSLength returns the length of the longest common subsequence of a and b.
// It keeps two rows of the dynamic-programming table, so memory is linear
// in the shorter sequence while time stays O(len(a)*len(b)).
func LCSLength(a, b []string) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	n := len(b)
	if n == 0 {
		return 0
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for i := 1; i <= len(a); i++ {
		curr[0] = 0
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = maxInt(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// SubsequenceSimilarity returns 2*L/(len(a)+len(b)) where L is the LCS
// length. Two empty sequences score 0.0.
func SubsequenceSimilarity(a, b []string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0.0
	}
	return 2.0 * float64(LCSLength(a, b)) / float64(total)
}

// SubsequenceScore tokenizes both snippets, comments removed, and returns
// their subsequence similarity.
func SubsequenceScore(codeA, codeB string) float64 {
	return SubsequenceSimilarity(lexer.Tokenize(codeA), lexer.Tokenize(codeB))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
