package driving

import (
	"context"

	"github.com/custodia-labs/ideaforge/internal/analysis/related"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// SimilarOptions tune approximate duplicate detection for one call.
// Zero values fall back to the configured settings.
type SimilarOptions struct {
	Threshold float64
	Mode      domain.ClusterMode
	Blended   bool
}

// AnalysisService provides line-level analysis of a single document.
type AnalysisService interface {
	// ExactDuplicates groups lines with the same normalised content.
	ExactDuplicates(ctx context.Context, doc *domain.Document) ([]domain.DuplicateGroup, error)

	// DuplicatesWithContext splits exact duplicates into same-context clusters.
	DuplicatesWithContext(ctx context.Context, doc *domain.Document) ([]domain.DuplicateContext, error)

	// SimilarLines groups near-identical lines.
	SimilarLines(ctx context.Context, doc *domain.Document, opts SimilarOptions) ([]domain.DuplicateGroup, error)

	// LocateConcepts lists the lines mentioning each term.
	LocateConcepts(ctx context.Context, doc *domain.Document, terms []string) ([]domain.ConceptOccurrences, error)

	// LocateCatalog lists the lines matching each catalog concept.
	LocateCatalog(ctx context.Context, doc *domain.Document) ([]domain.ConceptOccurrences, error)

	// SearchConcept returns each mention of term with fixed surrounding lines.
	SearchConcept(ctx context.Context, doc *domain.Document, term string, contextLines int) ([]domain.ConceptHit, error)

	// SearchConceptWithContext merges mentions of term sharing a context window.
	SearchConceptWithContext(ctx context.Context, doc *domain.Document, term string) ([]domain.ContextMatch, error)

	// RelatedConcepts finds terms co-occurring inside context windows.
	RelatedConcepts(ctx context.Context, doc *domain.Document, terms []string) (related.Result, error)

	// SearchPattern matches a regular expression against every line.
	SearchPattern(ctx context.Context, doc *domain.Document, pattern string) ([]domain.PatternMatch, error)

	// Structure reports the layout of the document.
	Structure(ctx context.Context, doc *domain.Document) (domain.Structure, error)

	// ExtractSections pulls the sections triggered by keywords.
	ExtractSections(ctx context.Context, doc *domain.Document, keywords []string) ([]domain.Section, error)

	// CompareSections reconciles extracted sections as versions of one idea.
	CompareSections(ctx context.Context, name string, sections []domain.Section) (domain.Recommendation, error)

	// Noise finds conversational chatter sections.
	Noise(ctx context.Context, doc *domain.Document) ([]domain.LineRange, error)
}
