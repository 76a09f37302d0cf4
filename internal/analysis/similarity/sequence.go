// Package similarity scores how alike two texts are.
//
// Three measures are provided: a sequence ratio over characters, a Jaccard
// overlap of detected concepts, and a word-set Jaccard. Scorer blends the
// first two.
package similarity

import "github.com/custodia-labs/ideaforge/internal/analysis/textnorm"

// SequenceRatio returns 2·LCS(a, b) / (|a| + |b|) over the runes of a and b,
// where LCS is the longest common subsequence. The inputs are compared as
// given; use Sequence for raw text. The ratio is symmetric, 1.0 for equal
// non-empty inputs and 0.0 when either input is empty.
func SequenceRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	return 2 * float64(lcsLength(ra, rb)) / float64(total)
}

// Sequence normalises both texts and returns their SequenceRatio.
func Sequence(a, b string) float64 {
	return SequenceRatio(textnorm.Normalize(a), textnorm.Normalize(b))
}

// UpperBound returns the largest SequenceRatio two strings of the given rune
// lengths could reach. Callers use it to skip comparisons that cannot pass a
// threshold.
func UpperBound(lenA, lenB int) float64 {
	if lenA == 0 || lenB == 0 {
		return 0
	}
	return 2 * float64(min(lenA, lenB)) / float64(lenA+lenB)
}

// lcsLength runs the classic dynamic programme with two rows, iterating
// over the shorter input in the inner loop.
func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
