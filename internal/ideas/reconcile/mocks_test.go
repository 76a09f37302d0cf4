package reconcile

import (
	"strings"

	"github.com/custodia-labs/ideaforge/internal/analysis/similarity"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// lengthScorer scores an idea by its content length.
type lengthScorer struct{}

func (lengthScorer) Score(idea domain.IdeaRecord) float64 {
	return float64(len(idea.Content))
}

// fixedSimilarity returns the same similarity for every pair.
type fixedSimilarity float64

func (f fixedSimilarity) Blended(string, string) float64 {
	return float64(f)
}

// fixedAssessor rates text by whether it contains "better".
type fixedAssessor struct{}

func (fixedAssessor) Assess(text string) domain.QualityAssessment {
	v := 0.2
	if strings.Contains(text, "better") {
		v = 0.9
	}
	return domain.QualityAssessment{
		Clarity: v, MathematicalBeauty: v, ScientificLogic: v, MathematicalPower: v,
		Innovation: v, LiteraryCoherence: v, Applicability: v,
	}
}

// wordDetector detects listed words as concepts.
type wordDetector []string

func (d wordDetector) Detect(text string) similarity.Set {
	found := similarity.Set{}
	for _, w := range d {
		if strings.Contains(text, w) {
			found[w] = struct{}{}
		}
	}
	return found
}
