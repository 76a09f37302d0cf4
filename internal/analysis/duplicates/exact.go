package duplicates

import (
	"sort"
	"unicode/utf8"

	"github.com/custodia-labs/ideaforge/internal/analysis/textnorm"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// DefaultMinLineLength is the default minimum normalised rune length.
const DefaultMinLineLength = 10

type line struct {
	loc        domain.Location
	text       string
	normalized string
	runes      int
}

// qualifyingLines returns the lines long enough to compare, in order.
func qualifyingLines(doc *domain.Document, minLength int) []line {
	var out []line
	for i := 0; i < doc.Len(); i++ {
		loc := domain.Location(i)
		raw := doc.Line(loc)
		n := textnorm.Normalize(raw)
		runes := utf8.RuneCountInString(n)
		if n == "" || runes < minLength {
			continue
		}
		out = append(out, line{loc: loc, text: raw, normalized: n, runes: runes})
	}
	return out
}

// Exact groups lines that normalise to the same text.
// Only fingerprints seen on two or more lines produce a group. Groups are
// ordered by member count, largest first, then by first occurrence.
func Exact(doc *domain.Document, minLength int) []domain.DuplicateGroup {
	byHash := make(map[string]*domain.DuplicateGroup)
	var order []string

	for _, l := range qualifyingLines(doc, minLength) {
		fp, ok := textnorm.Fingerprint(l.normalized)
		if !ok {
			continue
		}
		g, seen := byHash[fp]
		if !seen {
			g = &domain.DuplicateGroup{Kind: domain.DuplicateExact, Fingerprint: fp, Score: 1}
			byHash[fp] = g
			order = append(order, fp)
		}
		g.Members = append(g.Members, domain.DuplicateMember{Location: l.loc, Text: l.text})
	}

	groups := []domain.DuplicateGroup{}
	for _, fp := range order {
		if g := byHash[fp]; g.Count() > 1 {
			groups = append(groups, *g)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count() > groups[j].Count()
	})
	return groups
}
