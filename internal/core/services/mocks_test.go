package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
)

// testCatalog is a small vocabulary shared by the service tests.
func testCatalog() domain.Catalog {
	return domain.Catalog{
		Concepts: []domain.Concept{
			{Name: "zeta", Pattern: `zeta|زيتا`},
			{Name: "prime", Pattern: `primes?`},
			{Name: "filament", Pattern: `filaments?`},
		},
		Categories: []domain.Category{
			{Name: "riemann", Keywords: []string{"zeta"}},
			{Name: "strings", Keywords: []string{"filament"}},
		},
		Keywords:            []string{"zeta", "prime", "filament"},
		ImportantCategories: []string{"riemann"},
		BlockPatterns:       []string{`###\s+`},
		EquationPatterns:    []string{`\$.*?\$`},
		NoisePatterns:       []string{`^sure[,!]`},
		Markers: domain.Markers{
			Example: []string{"example"},
			Logic:   []string{"therefore"},
		},
		DefaultDate:     "2025-07-26",
		DefaultCategory: "general",
		DefaultSection:  "Appendix",
	}
}

// mockSnapshotStore is a mock implementation of driven.SnapshotStore.
type mockSnapshotStore struct {
	ideas   []domain.IdeaRecord
	saveErr error
	loadErr error
	closed  bool
}

var _ driven.SnapshotStore = (*mockSnapshotStore)(nil)

func (m *mockSnapshotStore) Save(_ context.Context, ideas []domain.IdeaRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.ideas = append([]domain.IdeaRecord(nil), ideas...)
	return nil
}

func (m *mockSnapshotStore) Load(_ context.Context) ([]domain.IdeaRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.ideas, nil
}

func (m *mockSnapshotStore) Close() error {
	m.closed = true
	return nil
}

// mockLoader is a mock implementation of driven.DocumentLoader over
// in-memory files.
type mockLoader struct {
	files map[string]string
}

var _ driven.DocumentLoader = (*mockLoader)(nil)

func (m *mockLoader) Load(ctx context.Context, uri string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, ok := m.files[uri]
	if !ok {
		return nil, errors.New("file not found")
	}
	return domain.NewDocumentFromText(uri, uri, text), nil
}
