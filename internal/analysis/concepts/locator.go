package concepts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/ideaforge/internal/analysis/textnorm"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

// Locate finds every line mentioning each term, case-insensitively.
// Results follow the order of terms; a term with no hits has an empty
// location list.
func Locate(doc *domain.Document, terms []string) []domain.ConceptOccurrences {
	folded := make([]string, doc.Len())
	for i := range folded {
		folded[i] = textnorm.Fold(doc.Line(domain.Location(i)))
	}

	out := make([]domain.ConceptOccurrences, 0, len(terms))
	for _, term := range terms {
		occ := domain.ConceptOccurrences{Concept: term, Locations: []domain.Location{}}
		needle := textnorm.Fold(strings.TrimSpace(term))
		if needle != "" {
			for i, line := range folded {
				if strings.Contains(line, needle) {
					occ.Locations = append(occ.Locations, domain.Location(i))
				}
			}
		}
		out = append(out, occ)
	}
	return out
}

// LocateCatalog finds every line matching each catalog concept.
// A concept with an invalid pattern yields no locations and its error is
// returned alongside the results of its siblings.
func LocateCatalog(doc *domain.Document, catalog *Catalog) ([]domain.ConceptOccurrences, []error) {
	var errs []error
	out := make([]domain.ConceptOccurrences, 0, catalog.Len())
	for _, name := range catalog.Names() {
		occ := domain.ConceptOccurrences{Concept: name, Locations: []domain.Location{}}
		re, err := catalog.Matcher(name)
		if err != nil {
			errs = append(errs, err)
			out = append(out, occ)
			continue
		}
		for i := 0; i < doc.Len(); i++ {
			if re.MatchString(doc.Line(domain.Location(i))) {
				occ.Locations = append(occ.Locations, domain.Location(i))
			}
		}
		out = append(out, occ)
	}
	return out, errs
}

// SearchPattern matches a user-supplied regular expression against each
// line, case-insensitively. An invalid pattern returns no matches and an
// error wrapping ErrInvalidPattern.
func SearchPattern(doc *domain.Document, pattern string) ([]domain.PatternMatch, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		logger.Warn("invalid search pattern %q: %v", pattern, err)
		return []domain.PatternMatch{}, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
	}

	matches := []domain.PatternMatch{}
	for i := 0; i < doc.Len(); i++ {
		line := doc.Line(domain.Location(i))
		for _, loc := range re.FindAllStringIndex(line, -1) {
			matches = append(matches, domain.PatternMatch{
				Line:    domain.Location(i),
				Content: strings.TrimSpace(line),
				Match:   line[loc[0]:loc[1]],
				Start:   loc[0],
				End:     loc[1],
			})
		}
	}
	return matches, nil
}

// SearchConcept returns each line mentioning term with contextLines lines of
// surrounding text on both sides.
func SearchConcept(doc *domain.Document, term string, contextLines int) []domain.ConceptHit {
	if contextLines < 0 {
		contextLines = 0
	}
	hits := []domain.ConceptHit{}
	occ := Locate(doc, []string{term})
	for _, loc := range occ[0].Locations {
		start := max(loc-domain.Location(contextLines), 0)
		end := min(loc+domain.Location(contextLines), domain.Location(doc.Len()-1))
		hits = append(hits, domain.ConceptHit{
			Line:    loc,
			Content: strings.TrimSpace(doc.Line(loc)),
			Context: doc.Slice(start, end),
			Start:   start,
			End:     end,
		})
	}
	return hits
}

// Preview shortens a line for listings, keeping at most n runes.
func Preview(line string, n int) string {
	line = strings.TrimSpace(line)
	r := []rune(line)
	if len(r) <= n {
		return line
	}
	return string(r[:n]) + "..."
}
