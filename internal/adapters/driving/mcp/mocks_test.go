package mcp

import (
	"context"

	"github.com/custodia-labs/ideaforge/internal/analysis/related"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
// Methods the tools do not call fall through to the nil embedded interface.
type mockAnalysisService struct {
	driving.AnalysisService

	groups   []domain.DuplicateGroup
	contexts []domain.DuplicateContext
	hits     []domain.ConceptHit
	windows  []domain.ContextMatch
	related  related.Result
	err      error

	lastDoc     *domain.Document
	lastOpts    driving.SimilarOptions
	lastTerm    string
	lastContext int
	lastTerms   []string
}

func (m *mockAnalysisService) ExactDuplicates(_ context.Context, doc *domain.Document) ([]domain.DuplicateGroup, error) {
	m.lastDoc = doc
	return m.groups, m.err
}

func (m *mockAnalysisService) DuplicatesWithContext(_ context.Context, doc *domain.Document) ([]domain.DuplicateContext, error) {
	m.lastDoc = doc
	return m.contexts, m.err
}

func (m *mockAnalysisService) SimilarLines(
	_ context.Context,
	doc *domain.Document,
	opts driving.SimilarOptions,
) ([]domain.DuplicateGroup, error) {
	m.lastDoc = doc
	m.lastOpts = opts
	return m.groups, m.err
}

func (m *mockAnalysisService) SearchConcept(
	_ context.Context,
	doc *domain.Document,
	term string,
	contextLines int,
) ([]domain.ConceptHit, error) {
	m.lastDoc = doc
	m.lastTerm = term
	m.lastContext = contextLines
	return m.hits, m.err
}

func (m *mockAnalysisService) SearchConceptWithContext(
	_ context.Context,
	doc *domain.Document,
	term string,
) ([]domain.ContextMatch, error) {
	m.lastDoc = doc
	m.lastTerm = term
	return m.windows, m.err
}

func (m *mockAnalysisService) RelatedConcepts(
	_ context.Context,
	doc *domain.Document,
	terms []string,
) (related.Result, error) {
	m.lastDoc = doc
	m.lastTerms = terms
	return m.related, m.err
}

// mockIdeaService is a mock implementation of driving.IdeaService.
type mockIdeaService struct {
	driving.IdeaService

	ideas   []domain.IdeaRecord
	rec     domain.Recommendation
	verdict domain.IntegrationVerdict
	err     error
	loadErr error

	loads   int
	lastIDs []string
}

func (m *mockIdeaService) Load(_ context.Context) error {
	m.loads++
	return m.loadErr
}

func (m *mockIdeaService) List(_ context.Context) ([]domain.IdeaRecord, error) {
	return m.ideas, m.err
}

func (m *mockIdeaService) Get(_ context.Context, id string) (domain.IdeaRecord, error) {
	if m.err != nil {
		return domain.IdeaRecord{}, m.err
	}
	for _, idea := range m.ideas {
		if idea.ID == id {
			return idea, nil
		}
	}
	return domain.IdeaRecord{}, domain.ErrNotFound
}

func (m *mockIdeaService) Reconcile(_ context.Context, ids []string) (domain.Recommendation, error) {
	m.lastIDs = ids
	return m.rec, m.err
}

func (m *mockIdeaService) Integrate(_ context.Context, _ string, _ *domain.Document) (domain.IntegrationVerdict, error) {
	return m.verdict, m.err
}

// mockLoader serves fixed documents by path.
type mockLoader struct {
	docs map[string]*domain.Document
}

func (m *mockLoader) Load(_ context.Context, uri string) (*domain.Document, error) {
	doc, ok := m.docs[uri]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}
