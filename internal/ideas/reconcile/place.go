package reconcile

import (
	"strings"

	"github.com/custodia-labs/ideaforge/internal/analysis/similarity"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// Place returns the section whose detected concepts overlap most with the
// idea's, and that overlap. When no section shares a concept the default
// section is returned with score 0.
func Place(text string, sections []domain.Section, detector similarity.ConceptDetector, defaultSection string) (string, float64) {
	best, bestScore := defaultSection, 0.0
	if detector == nil {
		return best, bestScore
	}
	ideaConcepts := detector.Detect(text)
	for _, sec := range sections {
		sectionConcepts := detector.Detect(strings.Join(sec.Lines, "\n"))
		if len(sectionConcepts) == 0 {
			continue
		}
		if s := similarity.Jaccard(ideaConcepts, sectionConcepts); s > bestScore {
			best, bestScore = sec.Name, s
		}
	}
	return best, bestScore
}
