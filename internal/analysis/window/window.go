// Package window computes word-budgeted context windows around lines.
package window

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// DefaultHeadingPattern recognises markdown ATX headings.
const DefaultHeadingPattern = `^\s*#{1,6}\s`

// DefaultBudget is the default per-direction word budget.
const DefaultBudget = 10

// Finder expands a center line into a context window.
//
// Walking in either direction, lines are added while the running word count
// stays within the budget; a heading line is included and stops the walk.
type Finder struct {
	budget   int
	headings []*regexp.Regexp
}

// Option configures a Finder.
type Option func(*Finder)

// WithBudget sets the per-direction word budget.
func WithBudget(words int) Option {
	return func(f *Finder) {
		if words >= 0 {
			f.budget = words
		}
	}
}

// WithHeadingPatterns replaces the heading conventions.
// Patterns that do not compile are skipped; see ValidateHeadingPatterns.
func WithHeadingPatterns(patterns ...string) Option {
	return func(f *Finder) {
		f.headings = f.headings[:0]
		for _, p := range patterns {
			if re, err := regexp.Compile(p); err == nil {
				f.headings = append(f.headings, re)
			}
		}
	}
}

// NewFinder creates a Finder with the default budget and heading convention.
func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		budget:   DefaultBudget,
		headings: []*regexp.Regexp{regexp.MustCompile(DefaultHeadingPattern)},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ValidateHeadingPatterns reports the first heading pattern that does not compile.
func ValidateHeadingPatterns(patterns []string) error {
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("heading pattern %q: %w: %v", p, domain.ErrInvalidPattern, err)
		}
	}
	return nil
}

// Budget returns the per-direction word budget.
func (f *Finder) Budget() int {
	return f.budget
}

// IsHeading reports whether line is a structural heading.
func (f *Finder) IsHeading(line string) bool {
	for _, re := range f.headings {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Window returns the context window around center.
// The center line is always included, whatever its length.
func (f *Finder) Window(doc *domain.Document, center domain.Location) domain.ContextWindow {
	if !doc.Valid(center) {
		return domain.ContextWindow{Start: center, End: center}
	}

	start, end := center, center
	total := doc.WordCount(center)

	before := 0
	for i := center - 1; i >= 0; i-- {
		words := doc.WordCount(i)
		if before+words > f.budget {
			break
		}
		before += words
		start = i
		if f.IsHeading(doc.Line(i)) {
			break
		}
	}

	after := 0
	for i := center + 1; int(i) < doc.Len(); i++ {
		words := doc.WordCount(i)
		if after+words > f.budget {
			break
		}
		after += words
		end = i
		if f.IsHeading(doc.Line(i)) {
			break
		}
	}

	return domain.ContextWindow{Start: start, End: end, WordCount: total + before + after}
}

// Text returns the lines covered by w.
func (f *Finder) Text(doc *domain.Document, w domain.ContextWindow) []string {
	return doc.Slice(w.Start, w.End)
}

// WordsBetween counts the words on lines a..b inclusive, in either order.
func WordsBetween(doc *domain.Document, a, b domain.Location) int {
	if a > b {
		a, b = b, a
	}
	total := 0
	for _, line := range doc.Slice(a, b) {
		total += len(strings.Fields(line))
	}
	return total
}

// SameContext reports whether two lines are close enough to share a context:
// the words between them, inclusive, fit within twice the budget.
func (f *Finder) SameContext(doc *domain.Document, a, b domain.Location) bool {
	return WordsBetween(doc, a, b) <= 2*f.budget
}
