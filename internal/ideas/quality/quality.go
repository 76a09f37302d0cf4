// Package quality scores parsed ideas.
//
// Scorer produces the importance score stored on each IdeaRecord: a
// weighted sum of structural signals. Assessor rates free text on seven
// 0..1 criteria for the integration classifier.
package quality

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/ideaforge/internal/analysis/textnorm"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

var (
	headerPattern   = regexp.MustCompile(`\*\*.*?\*\*`)
	sentenceBreak   = regexp.MustCompile(`[.!?؟\n]+`)
	mathSymbolMatch = regexp.MustCompile(`[=+\-*/∫∑√π]|\\[a-zA-Z]+`)
)

// Breakdown lists the contribution of each signal to a score.
type Breakdown struct {
	Equations         float64 `json:"equations"`
	Keywords          float64 `json:"keywords"`
	Length            float64 `json:"length"`
	Headers           float64 `json:"headers"`
	Examples          float64 `json:"examples"`
	Logic             float64 `json:"logic"`
	Transitions       float64 `json:"transitions"`
	Sentences         float64 `json:"sentences"`
	ImportantCategory float64 `json:"important_category"`
}

// Total sums the contributions.
func (b Breakdown) Total() float64 {
	return b.Equations + b.Keywords + b.Length + b.Headers + b.Examples +
		b.Logic + b.Transitions + b.Sentences + b.ImportantCategory
}

// Scorer computes importance scores. It is a pure function of the idea.
type Scorer struct {
	weights   domain.QualityWeights
	markers   domain.Markers
	important map[string]bool
}

// NewScorer creates a Scorer from weights and the catalog's markers and
// important categories.
func NewScorer(weights domain.QualityWeights, catalog domain.Catalog) *Scorer {
	s := &Scorer{
		weights:   weights,
		markers:   catalog.Markers,
		important: make(map[string]bool, len(catalog.ImportantCategories)),
	}
	for _, c := range catalog.ImportantCategories {
		s.important[c] = true
	}
	return s
}

// Score returns the importance score of idea.
func (s *Scorer) Score(idea domain.IdeaRecord) float64 {
	return s.Explain(idea).Total()
}

// Explain returns the per-signal contributions to the score.
//
// Sentence statistics are taken on the content with equations removed and
// empty sentences ignored, so adding an equation never lowers the score.
func (s *Scorer) Explain(idea domain.IdeaRecord) Breakdown {
	w := s.weights
	content := idea.Content
	folded := textnorm.Fold(content)

	b := Breakdown{
		Equations:   float64(len(idea.Equations)) * w.Equation,
		Keywords:    float64(len(idea.Keywords)) * w.Keyword,
		Headers:     float64(len(headerPattern.FindAllString(content, -1))) * w.Header,
		Examples:    float64(countMarkers(folded, s.markers.Example)) * w.Example,
		Logic:       float64(countMarkers(folded, s.markers.Logic)) * w.Logic,
		Transitions: float64(countMarkers(folded, s.markers.Transition)) * w.Transition,
	}
	if w.LengthDivisor > 0 {
		b.Length = min(float64(utf8.RuneCountInString(content))/w.LengthDivisor, w.LengthCap)
	}

	prose := content
	for _, eq := range idea.Equations {
		prose = strings.ReplaceAll(prose, eq, " ")
	}
	if avg, ok := AverageSentenceLength(prose); ok && avg >= w.SentenceMin && avg <= w.SentenceMax {
		b.Sentences = w.SentenceBonus
	}
	if s.important[idea.Category] {
		b.ImportantCategory = w.ImportantCategory
	}
	return b
}

// AverageSentenceLength returns the mean words per non-empty sentence.
func AverageSentenceLength(text string) (float64, bool) {
	words, sentences := 0, 0
	for _, sentence := range sentenceBreak.Split(text, -1) {
		n := len(strings.Fields(sentence))
		if n == 0 {
			continue
		}
		words += n
		sentences++
	}
	if sentences == 0 {
		return 0, false
	}
	return float64(words) / float64(sentences), true
}

// countMarkers counts occurrences of every marker in already folded text.
func countMarkers(folded string, markers []string) int {
	n := 0
	for _, m := range markers {
		m = textnorm.Fold(strings.TrimSpace(m))
		if m != "" {
			n += strings.Count(folded, m)
		}
	}
	return n
}
