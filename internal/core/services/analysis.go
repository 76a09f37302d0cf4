package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/ideaforge/internal/analysis/concepts"
	"github.com/custodia-labs/ideaforge/internal/analysis/duplicates"
	"github.com/custodia-labs/ideaforge/internal/analysis/related"
	"github.com/custodia-labs/ideaforge/internal/analysis/sections"
	"github.com/custodia-labs/ideaforge/internal/analysis/textnorm"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService runs line-level analyses over one document.
type AnalysisService struct {
	settings driving.SettingsService
	vocab    vocabulary
}

// NewAnalysisService creates an analysis service over catalog.
// A nil settings service means default settings.
func NewAnalysisService(settings driving.SettingsService, catalog domain.Catalog) *AnalysisService {
	return &AnalysisService{settings: settings, vocab: newVocabulary(catalog)}
}

func (s *AnalysisService) toolkit(ctx context.Context, doc *domain.Document) (*toolkit, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buildToolkit(s.settings, s.vocab)
}

// ExactDuplicates groups lines with the same normalised content.
func (s *AnalysisService) ExactDuplicates(ctx context.Context, doc *domain.Document) ([]domain.DuplicateGroup, error) {
	tk, err := s.toolkit(ctx, doc)
	if err != nil {
		return nil, err
	}

	logger.Section("Exact Duplicates")
	groups := duplicates.Exact(doc, tk.settings.Analysis.MinLineLength)
	logger.Debug("%d lines, %d groups", doc.Len(), len(groups))
	return groups, nil
}

// DuplicatesWithContext splits exact duplicates into same-context clusters.
func (s *AnalysisService) DuplicatesWithContext(ctx context.Context, doc *domain.Document) ([]domain.DuplicateContext, error) {
	tk, err := s.toolkit(ctx, doc)
	if err != nil {
		return nil, err
	}

	groups := duplicates.Exact(doc, tk.settings.Analysis.MinLineLength)
	return duplicates.WithContext(doc, groups, tk.finder), nil
}

// SimilarLines groups near-identical lines.
func (s *AnalysisService) SimilarLines(
	ctx context.Context, doc *domain.Document, opts driving.SimilarOptions,
) ([]domain.DuplicateGroup, error) {
	tk, err := s.toolkit(ctx, doc)
	if err != nil {
		return nil, err
	}

	cfg := duplicates.Config{
		Threshold: tk.settings.Analysis.SimilarityThreshold,
		MinLength: tk.settings.Analysis.MinLineLength,
		Mode:      tk.settings.Analysis.ClusterMode,
	}
	if opts.Threshold > 0 {
		if opts.Threshold > 1 {
			return nil, fmt.Errorf("%w: threshold must be within [0, 1], got %v", domain.ErrInvalidInput, opts.Threshold)
		}
		cfg.Threshold = opts.Threshold
	}
	if opts.Mode != "" {
		if !opts.Mode.IsValid() {
			return nil, fmt.Errorf("%w: unknown cluster mode %q", domain.ErrInvalidInput, opts.Mode)
		}
		cfg.Mode = opts.Mode
	}
	if opts.Blended {
		cfg.Score = tk.similarity.Blended
	}

	logger.Section("Similar Lines")
	groups := duplicates.Approximate(doc, cfg)
	logger.Debug("%d groups at threshold %.2f", len(groups), cfg.Threshold)
	return groups, nil
}

// LocateConcepts lists the lines mentioning each term.
func (s *AnalysisService) LocateConcepts(
	ctx context.Context, doc *domain.Document, terms []string,
) ([]domain.ConceptOccurrences, error) {
	if _, err := s.toolkit(ctx, doc); err != nil {
		return nil, err
	}
	return concepts.Locate(doc, terms), nil
}

// LocateCatalog lists the lines matching each catalog concept.
// Concepts with invalid patterns are logged and left out.
func (s *AnalysisService) LocateCatalog(ctx context.Context, doc *domain.Document) ([]domain.ConceptOccurrences, error) {
	tk, err := s.toolkit(ctx, doc)
	if err != nil {
		return nil, err
	}

	occurrences, errs := concepts.LocateCatalog(doc, tk.concepts)
	for _, e := range errs {
		logger.Warn("%v", e)
	}
	return occurrences, nil
}

// SearchConcept returns each mention of term with contextLines lines on each side.
func (s *AnalysisService) SearchConcept(
	ctx context.Context, doc *domain.Document, term string, contextLines int,
) ([]domain.ConceptHit, error) {
	if _, err := s.toolkit(ctx, doc); err != nil {
		return nil, err
	}
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: empty search term", domain.ErrInvalidInput)
	}
	return concepts.SearchConcept(doc, term, contextLines), nil
}

// SearchConceptWithContext merges mentions of term that share a context window.
func (s *AnalysisService) SearchConceptWithContext(
	ctx context.Context, doc *domain.Document, term string,
) ([]domain.ContextMatch, error) {
	tk, err := s.toolkit(ctx, doc)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: empty search term", domain.ErrInvalidInput)
	}
	return related.NewGrouper(tk.finder).SearchWithContext(doc, term), nil
}

// RelatedConcepts finds terms co-occurring inside context windows.
// With no terms the catalog's concept names are used.
func (s *AnalysisService) RelatedConcepts(
	ctx context.Context, doc *domain.Document, terms []string,
) (related.Result, error) {
	tk, err := s.toolkit(ctx, doc)
	if err != nil {
		return related.Result{}, err
	}
	if len(terms) == 0 {
		terms = tk.catalog.ConceptNames()
	}

	logger.Section("Related Concepts")
	res := related.NewGrouper(tk.finder).Group(doc, terms)
	logger.Debug("%d terms, %d related groups", len(terms), len(res.Groups))
	return res, nil
}

// SearchPattern matches a regular expression against every line.
func (s *AnalysisService) SearchPattern(
	ctx context.Context, doc *domain.Document, pattern string,
) ([]domain.PatternMatch, error) {
	if _, err := s.toolkit(ctx, doc); err != nil {
		return nil, err
	}
	return concepts.SearchPattern(doc, pattern)
}

// Structure reports the headings, lists, equations and dates of the document.
func (s *AnalysisService) Structure(ctx context.Context, doc *domain.Document) (domain.Structure, error) {
	if _, err := s.toolkit(ctx, doc); err != nil {
		return domain.Structure{}, err
	}
	return sections.Analyze(doc), nil
}

// ExtractSections pulls the sections triggered by keywords.
// With no keywords the catalog keywords are used.
func (s *AnalysisService) ExtractSections(
	ctx context.Context, doc *domain.Document, keywords []string,
) ([]domain.Section, error) {
	tk, err := s.toolkit(ctx, doc)
	if err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		keywords = tk.catalog.Keywords
	}
	return sections.Extract(doc, keywords, tk.finder.IsHeading, sections.DefaultMaxSpan), nil
}

// CompareSections treats sections as versions of one idea named name and
// reconciles them.
func (s *AnalysisService) CompareSections(
	ctx context.Context, name string, secs []domain.Section,
) (domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Recommendation{}, err
	}
	tk, err := buildToolkit(s.settings, s.vocab)
	if err != nil {
		return domain.Recommendation{}, err
	}

	candidates := make([]domain.IdeaRecord, 0, len(secs))
	for i, sec := range secs {
		idea := domain.IdeaRecord{
			ID:        fmt.Sprintf("%s#%d", name, i+1),
			Title:     fmt.Sprintf("%s (lines %d-%d)", name, sec.Start.Number(), sec.End.Number()),
			Content:   strings.Join(sec.Lines, "\n"),
			StartLine: sec.Start,
			EndLine:   sec.End,
		}
		idea.ContentHash, _ = textnorm.FingerprintText(idea.Content)
		candidates = append(candidates, idea)
	}
	return tk.reconciler.Reconcile(candidates)
}

// Noise finds sections opened by the catalog's chatter patterns.
func (s *AnalysisService) Noise(ctx context.Context, doc *domain.Document) ([]domain.LineRange, error) {
	tk, err := s.toolkit(ctx, doc)
	if err != nil {
		return nil, err
	}
	// Invalid patterns are logged by the detector; the rest still apply.
	detector, _ := sections.NewNoiseDetector(tk.catalog.NoisePatterns, sections.DefaultNoiseSpan)
	return detector.Detect(doc), nil
}
