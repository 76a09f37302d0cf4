package duplicates

import "github.com/custodia-labs/ideaforge/internal/core/domain"

// ContextJudge decides whether two lines share a context.
type ContextJudge interface {
	SameContext(doc *domain.Document, a, b domain.Location) bool
}

// WithContext splits each group's members into same-context clusters.
// Each member joins the first cluster whose first member shares its
// context, or starts a new cluster. A group with a single cluster repeats
// within one context; otherwise its copies are spread across the document.
func WithContext(doc *domain.Document, groups []domain.DuplicateGroup, judge ContextJudge) []domain.DuplicateContext {
	out := make([]domain.DuplicateContext, 0, len(groups))
	for _, g := range groups {
		var clusters [][]domain.Location
		for _, loc := range g.Locations() {
			placed := false
			for k, c := range clusters {
				if judge.SameContext(doc, c[0], loc) {
					clusters[k] = append(c, loc)
					placed = true
					break
				}
			}
			if !placed {
				clusters = append(clusters, []domain.Location{loc})
			}
		}

		verdict := domain.ContextDifferent
		if len(clusters) == 1 {
			verdict = domain.ContextSame
		}
		out = append(out, domain.DuplicateContext{Group: g, Clusters: clusters, Verdict: verdict})
	}
	return out
}
