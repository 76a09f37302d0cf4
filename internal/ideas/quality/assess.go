package quality

import (
	"github.com/custodia-labs/ideaforge/internal/analysis/similarity"
	"github.com/custodia-labs/ideaforge/internal/analysis/textnorm"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// Saturation points: a criterion reaches 1.0 at this many hits.
const (
	mathSymbolsForFull = 10
	logicForFull       = 5
	conceptsForFull    = 8
	innovationForFull  = 3
	transitionsForFull = 4
	examplesForFull    = 3
)

// Assessor rates text on seven criteria.
type Assessor struct {
	markers  domain.Markers
	detector similarity.ConceptDetector
}

// NewAssessor creates an Assessor. A nil detector rates mathematical power 0.
func NewAssessor(markers domain.Markers, detector similarity.ConceptDetector) *Assessor {
	return &Assessor{markers: markers, detector: detector}
}

// Assess rates text. Clarity peaks for sentences of up to 15 words and
// falls to zero at 45; the others saturate at a fixed number of hits.
func (a *Assessor) Assess(text string) domain.QualityAssessment {
	folded := textnorm.Fold(text)

	var q domain.QualityAssessment
	if avg, ok := AverageSentenceLength(text); ok {
		q.Clarity = clamp(1 - (avg-15)/30)
	}
	q.MathematicalBeauty = ratio(len(mathSymbolMatch.FindAllString(text, -1)), mathSymbolsForFull)
	q.ScientificLogic = ratio(countMarkers(folded, a.markers.Logic), logicForFull)
	if a.detector != nil {
		q.MathematicalPower = ratio(len(a.detector.Detect(text)), conceptsForFull)
	}
	q.Innovation = ratio(countMarkers(folded, a.markers.Innovation), innovationForFull)
	q.LiteraryCoherence = ratio(countMarkers(folded, a.markers.Transition), transitionsForFull)
	q.Applicability = ratio(countMarkers(folded, a.markers.Example), examplesForFull)
	return q
}

func ratio(hits, full int) float64 {
	return clamp(float64(hits) / float64(full))
}

func clamp(v float64) float64 {
	return max(0, min(1, v))
}
