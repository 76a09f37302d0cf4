package similarity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// keywordDetector detects any of its words as a concept of the same name.
type keywordDetector []string

func (d keywordDetector) Detect(text string) Set {
	found := Set{}
	lower := strings.ToLower(text)
	for _, w := range d {
		if strings.Contains(lower, w) {
			found[w] = struct{}{}
		}
	}
	return found
}

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "abc", "abc", 1},
		{"disjoint", "abc", "xyz", 0},
		{"empty left", "", "abc", 0},
		{"both empty", "", "", 0},
		{"half overlap", "abcd", "abxy", 0.5},
		{"subsequence", "abc", "aXbXc", 2 * 3.0 / 8},
		{"arabic runes", "نظرية", "نظريه", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SequenceRatio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSequence_PropertiesHold(t *testing.T) {
	texts := []string{
		"The sky is blue today.",
		"the sky was blue yesterday",
		"نظرية الفتائل في الرياضيات",
		"نظرية الفتائل والأعداد الأولية",
		"x",
		"",
	}

	for _, a := range texts {
		for _, b := range texts {
			s := Sequence(a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
			assert.Equal(t, s, Sequence(b, a), "symmetry for %q / %q", a, b)
		}
		if a != "" {
			assert.Equal(t, 1.0, Sequence(a, a))
		}
	}
}

func TestSequence_NormalisesInput(t *testing.T) {
	assert.Equal(t, 1.0, Sequence("The sky is blue today.", "  the SKY is   blue TODAY!!"))
}

func TestUpperBound(t *testing.T) {
	assert.Equal(t, 0.0, UpperBound(0, 4))
	assert.InDelta(t, 2*3.0/10, UpperBound(3, 7), 1e-9)
	assert.GreaterOrEqual(t, UpperBound(4, 4), SequenceRatio("abcd", "abxy"))
}

func TestJaccard(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard(Set{}, Set{}))
	assert.Equal(t, 0.0, Jaccard(NewSet("a"), Set{}))
	assert.Equal(t, 1.0, Jaccard(NewSet("a", "b"), NewSet("b", "a")))
	assert.InDelta(t, 1.0/3, Jaccard(NewSet("a", "b"), NewSet("b", "c")), 1e-9)
}

func TestWordJaccard(t *testing.T) {
	assert.Equal(t, 1.0, WordJaccard("Prime Numbers", "numbers prime"))
	assert.InDelta(t, 0.4, WordJaccard("a b c", "a b d e"), 1e-9)
	assert.Equal(t, 0.0, WordJaccard("", ""))
}

func TestScorer_ConceptOverlap(t *testing.T) {
	s := NewScorer(keywordDetector{"theory", "proof", "zeta"})

	assert.Equal(t, 0.0, s.ConceptOverlap("nothing here", "nor here"))
	assert.Equal(t, 1.0, s.ConceptOverlap("a theory", "the theory again"))
	assert.InDelta(t, 0.5, s.ConceptOverlap("theory and proof", "a proof"), 1e-9)
}

func TestScorer_Blended(t *testing.T) {
	s := NewScorer(keywordDetector{"theory", "proof"})

	t.Run("identical text scores one", func(t *testing.T) {
		assert.InDelta(t, 1.0, s.Blended("a theory of proof", "a theory of proof"), 1e-9)
		assert.InDelta(t, 1.0, s.Blended("plain words", "plain words"), 1e-9)
	})

	t.Run("without concepts the sequence ratio is used", func(t *testing.T) {
		a, b := "plain words here", "plain word there"
		assert.Equal(t, s.Sequence(a, b), s.Blended(a, b))
	})

	t.Run("weights applied", func(t *testing.T) {
		a, b := "theory", "theory proof"
		expected := 0.6*s.Sequence(a, b) + 0.4*0.5
		assert.InDelta(t, expected, s.Blended(a, b), 1e-9)
	})

	t.Run("symmetric and bounded", func(t *testing.T) {
		a, b := "theory of everything", "proof of nothing"
		assert.Equal(t, s.Blended(a, b), s.Blended(b, a))
		assert.GreaterOrEqual(t, s.Blended(a, b), 0.0)
		assert.LessOrEqual(t, s.Blended(a, b), 1.0)
	})

	t.Run("custom weights", func(t *testing.T) {
		conceptOnly := NewScorer(keywordDetector{"theory"}, WithWeights(0, 1))
		assert.Equal(t, 1.0, conceptOnly.Blended("theory one", "theory two entirely different"))
	})

	t.Run("nil detector", func(t *testing.T) {
		plain := NewScorer(nil)
		assert.Equal(t, 0.0, plain.ConceptOverlap("theory", "theory"))
		assert.Equal(t, plain.Sequence("ab", "ac"), plain.Score("ab", "ac"))
	})
}
