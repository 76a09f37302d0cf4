// Package related finds concepts that co-occur inside one context window.
package related

import (
	"github.com/custodia-labs/ideaforge/internal/analysis/concepts"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// WindowFinder computes the context window around a line.
type WindowFinder interface {
	Window(doc *domain.Document, center domain.Location) domain.ContextWindow
}

// Grouper relates concept occurrences through context windows.
type Grouper struct {
	finder WindowFinder
}

// NewGrouper creates a Grouper over finder.
func NewGrouper(finder WindowFinder) *Grouper {
	return &Grouper{finder: finder}
}

// Result is the outcome of Group.
type Result struct {
	Locations []domain.ConceptOccurrences `json:"concept_locations"`
	Groups    []domain.RelatedGroup       `json:"related_groups"`
}

// Group emits one RelatedGroup for every occurrence of a term whose window
// contains at least one other term. Concepts are listed with the triggering
// term first, then the others in term order. Duplicate terms are ignored.
func (g *Grouper) Group(doc *domain.Document, terms []string) Result {
	occurrences := concepts.Locate(doc, dedupe(terms))
	res := Result{Locations: occurrences, Groups: []domain.RelatedGroup{}}

	for _, occ := range occurrences {
		for _, center := range occ.Locations {
			w := g.finder.Window(doc, center)
			related := []string{occ.Concept}
			for _, other := range occurrences {
				if other.Concept == occ.Concept {
					continue
				}
				for _, loc := range other.Locations {
					if w.Contains(loc) {
						related = append(related, other.Concept)
						break
					}
				}
			}
			if len(related) < 2 {
				continue
			}
			res.Groups = append(res.Groups, domain.RelatedGroup{
				CenterLine:  center,
				Window:      w,
				Concepts:    related,
				ContextText: doc.Slice(w.Start, w.End),
			})
		}
	}
	return res
}

// SearchWithContext finds every occurrence of term and merges occurrences
// that fall inside the window of an earlier one.
func (g *Grouper) SearchWithContext(doc *domain.Document, term string) []domain.ContextMatch {
	occ := concepts.Locate(doc, []string{term})[0]
	matches := []domain.ContextMatch{}
	processed := make(map[domain.Location]bool, len(occ.Locations))

	for _, center := range occ.Locations {
		if processed[center] {
			continue
		}
		w := g.finder.Window(doc, center)
		m := domain.ContextMatch{Concept: term, Window: w, Text: doc.Slice(w.Start, w.End)}
		for _, loc := range occ.Locations {
			if w.Contains(loc) {
				m.Matches = append(m.Matches, loc)
				processed[loc] = true
			}
		}
		matches = append(matches, m)
	}
	return matches
}

func dedupe(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
