package sections

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/ideaforge/internal/analysis/textnorm"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

// DefaultMaxSpan bounds how far a keyword section reaches from its trigger line.
const DefaultMaxSpan = 50

// DefaultNoiseSpan bounds how far a noise section reaches past its opening line.
const DefaultNoiseSpan = 20

// HeadingFunc reports whether a line is a section heading.
type HeadingFunc func(line string) bool

// Extract finds every line mentioning one of keywords and grows it into a
// section bounded by the nearest headings, at most maxSpan-1 lines away on
// each side. Lines already inside a section are not used as new triggers.
// Section.Name is the keyword that triggered it.
func Extract(doc *domain.Document, keywords []string, isHeading HeadingFunc, maxSpan int) []domain.Section {
	if maxSpan <= 0 {
		maxSpan = DefaultMaxSpan
	}
	processed := make(map[domain.Location]bool)
	out := []domain.Section{}

	for _, kw := range keywords {
		needle := textnorm.Fold(strings.TrimSpace(kw))
		if needle == "" {
			continue
		}
		for i := 0; i < doc.Len(); i++ {
			loc := domain.Location(i)
			if processed[loc] || !strings.Contains(textnorm.Fold(doc.Line(loc)), needle) {
				continue
			}
			start, end := bounds(doc, loc, isHeading, maxSpan)
			for j := start; j <= end; j++ {
				processed[j] = true
			}
			out = append(out, domain.Section{Name: kw, Start: start, End: end, Lines: doc.Slice(start, end)})
		}
	}
	return out
}

func bounds(doc *domain.Document, center domain.Location, isHeading HeadingFunc, maxSpan int) (domain.Location, domain.Location) {
	start, end := center, center
	span := domain.Location(maxSpan)

	for i := center - 1; i > max(center-span, -1); i-- {
		if isHeading(doc.Line(i)) {
			break
		}
		start = i
	}
	for i := center + 1; i < min(center+span, domain.Location(doc.Len())); i++ {
		if isHeading(doc.Line(i)) {
			break
		}
		end = i
	}
	return start, end
}

// NoiseDetector finds conversational chatter sections.
type NoiseDetector struct {
	patterns []*regexp.Regexp
	span     int
}

// NewNoiseDetector compiles patterns case-insensitively. Patterns that do
// not compile are skipped and reported in the returned error, which wraps
// ErrInvalidPattern; the detector is still usable.
func NewNoiseDetector(patterns []string, span int) (*NoiseDetector, error) {
	if span <= 0 {
		span = DefaultNoiseSpan
	}
	d := &NoiseDetector{span: span}
	var bad []string
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			logger.Warn("skipping noise pattern %q: %v", p, err)
			bad = append(bad, p)
			continue
		}
		d.patterns = append(d.patterns, re)
	}
	if len(bad) > 0 {
		return d, fmt.Errorf("%w: noise patterns %q", domain.ErrInvalidPattern, bad)
	}
	return d, nil
}

func (d *NoiseDetector) isNoise(line string) bool {
	for _, re := range d.patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Detect returns the ranges opened by noise lines. A range runs until the
// next heading or bold line that is not itself noise, or for at most
// span-1 further lines.
func (d *NoiseDetector) Detect(doc *domain.Document) []domain.LineRange {
	ranges := []domain.LineRange{}
	for i := 0; i < doc.Len(); i++ {
		loc := domain.Location(i)
		if !d.isNoise(doc.Line(loc)) {
			continue
		}
		end := loc
		limit := min(loc+domain.Location(d.span), domain.Location(doc.Len()))
		for j := loc + 1; j < limit; j++ {
			next := strings.TrimSpace(doc.Line(j))
			if (strings.HasPrefix(next, "###") || strings.HasPrefix(next, "**")) && !d.isNoise(next) {
				break
			}
			end = j
		}
		ranges = append(ranges, domain.LineRange{Start: loc, End: end})
	}
	return ranges
}

// Remove returns a copy of doc without the lines covered by ranges.
func Remove(doc *domain.Document, ranges []domain.LineRange) *domain.Document {
	drop := make(map[domain.Location]bool)
	for _, r := range ranges {
		for l := r.Start; l <= r.End; l++ {
			drop[l] = true
		}
	}
	kept := make([]string, 0, doc.Len())
	for i := 0; i < doc.Len(); i++ {
		if !drop[domain.Location(i)] {
			kept = append(kept, doc.Line(domain.Location(i)))
		}
	}
	return domain.NewDocument(doc.ID, doc.URI, kept)
}
