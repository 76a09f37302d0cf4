// Package concepts compiles a concept catalog and finds concepts in documents.
package concepts

import (
	"fmt"
	"regexp"

	"github.com/custodia-labs/ideaforge/internal/analysis/similarity"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

// Verify interface compliance.
var _ similarity.ConceptDetector = (*Catalog)(nil)

type compiled struct {
	concept domain.Concept
	re      *regexp.Regexp
	err     error
}

// Catalog is a compiled, ordered set of named concept patterns.
// Patterns match case-insensitively. A pattern that fails to compile is
// remembered with its error; it never matches and sibling concepts are
// unaffected.
type Catalog struct {
	entries []compiled
	index   map[string]int
}

// NewCatalog compiles concepts in order.
func NewCatalog(concepts []domain.Concept) *Catalog {
	c := &Catalog{
		entries: make([]compiled, 0, len(concepts)),
		index:   make(map[string]int, len(concepts)),
	}
	for _, concept := range concepts {
		re, err := regexp.Compile("(?i)" + concept.Pattern)
		if err != nil {
			err = fmt.Errorf("concept %q: %w: %v", concept.Name, domain.ErrInvalidPattern, err)
			logger.Warn("%v", err)
		}
		c.index[concept.Name] = len(c.entries)
		c.entries = append(c.entries, compiled{concept: concept, re: re, err: err})
	}
	return c
}

// Names returns concept names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.concept.Name
	}
	return names
}

// Len returns the number of concepts.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Errors returns the compile errors of invalid patterns.
func (c *Catalog) Errors() []error {
	var errs []error
	for _, e := range c.entries {
		if e.err != nil {
			errs = append(errs, e.err)
		}
	}
	return errs
}

// Detect returns the names of the concepts that match text.
func (c *Catalog) Detect(text string) similarity.Set {
	found := similarity.Set{}
	for _, e := range c.entries {
		if e.re != nil && e.re.MatchString(text) {
			found[e.concept.Name] = struct{}{}
		}
	}
	return found
}

// Matcher returns the compiled pattern for name.
// It fails with ErrNotFound for unknown names and ErrInvalidPattern for
// patterns that did not compile.
func (c *Catalog) Matcher(name string) (*regexp.Regexp, error) {
	i, ok := c.index[name]
	if !ok {
		return nil, fmt.Errorf("concept %q: %w", name, domain.ErrNotFound)
	}
	e := c.entries[i]
	if e.err != nil {
		return nil, e.err
	}
	return e.re, nil
}
