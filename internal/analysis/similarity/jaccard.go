package similarity

import "strings"

// Set is a string set.
type Set map[string]struct{}

// NewSet builds a set from items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Jaccard returns |a∩b| / |a∪b|. Two empty sets score 0.0.
func Jaccard(a, b Set) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// WordSet returns the lower-cased whitespace tokens of s.
func WordSet(s string) Set {
	return NewSet(strings.Fields(strings.ToLower(s))...)
}

// WordJaccard is the Jaccard overlap of the word sets of a and b.
func WordJaccard(a, b string) float64 {
	return Jaccard(WordSet(a), WordSet(b))
}
