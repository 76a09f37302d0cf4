package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideaforge/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ideaforge/internal/analysis/textnorm"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

const (
	zetaShort = "the zeta zeros lie on the critical line"
	zetaLong  = "the zeta zeros lie on the critical line $x$"
)

func newIdeaService(t *testing.T, config map[string]any) (*IdeaService, *memory.IdeaStore) {
	t.Helper()
	cfg := memory.NewConfigStore()
	for k, v := range config {
		require.NoError(t, cfg.Set(k, v))
	}
	store := memory.NewIdeaStore()
	return NewIdeaService(store, nil, nil, NewSettingsService(cfg), testCatalog()), store
}

func ideaDoc(lines ...string) *domain.Document {
	return domain.NewDocument("doc", "ideas.md", lines)
}

func TestIdeaService_Parse_ScoresIdeas(t *testing.T) {
	service, store := newIdeaService(t, nil)

	res, err := service.Parse(context.Background(), ideaDoc(
		"### Zeta", zetaLong,
		"### Filament", "a filament model of space",
	))

	require.NoError(t, err)
	require.Len(t, res.Ideas, 2)
	assert.Equal(t, "riemann", res.Ideas[0].Category)
	assert.Equal(t, "strings", res.Ideas[1].Category)
	assert.Greater(t, res.Ideas[0].ImportanceScore, res.Ideas[1].ImportanceScore)
	assert.Empty(t, res.Ideas[0].ID)
	assert.Equal(t, 0, store.Len(), "parse stores nothing")
}

func TestIdeaService_Parse_NilDocument(t *testing.T) {
	service, _ := newIdeaService(t, nil)

	_, err := service.Parse(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIdeaService_Ingest_NewAndExactDuplicates(t *testing.T) {
	service, store := newIdeaService(t, nil)
	ctx := context.Background()
	doc := ideaDoc(
		"### Zeta", zetaShort,
		"### Filament", "a filament model of space",
	)

	first, err := service.Ingest(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Parsed)
	assert.Equal(t, 2, first.Count(domain.AdmissionNew))
	assert.Equal(t, "idea_001", first.Results[0].Idea.ID)
	assert.Equal(t, "idea_002", first.Results[1].Idea.ID)

	second, err := service.Ingest(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Count(domain.AdmissionExactDuplicate))
	assert.Equal(t, []string{"idea_001"}, second.Results[0].MatchedIDs)
	assert.Equal(t, domain.ActionDropped, second.Results[0].Action)
	assert.Equal(t, 2, store.Len())
}

func TestIdeaService_Ingest_Reconciliation(t *testing.T) {
	tests := []struct {
		name        string
		config      map[string]any
		stored      string
		offered     string
		disposition domain.Disposition
		action      string
		storedLen   int
		content     string
	}{
		{
			name:        "better version replaces in place",
			stored:      zetaShort,
			offered:     zetaLong,
			disposition: domain.DispositionKeepBest,
			action:      domain.ActionReplaced,
			storedLen:   1,
			content:     zetaLong,
		},
		{
			name:        "worse version dropped",
			stored:      zetaLong,
			offered:     zetaShort,
			disposition: domain.DispositionKeepBest,
			action:      domain.ActionDropped,
			storedLen:   1,
			content:     zetaLong,
		},
		{
			name:        "partial overlap left for review",
			config:      map[string]any{"thresholds.keep_best": 0.995},
			stored:      zetaShort,
			offered:     zetaLong,
			disposition: domain.DispositionReview,
			action:      domain.ActionPending,
			storedLen:   1,
			content:     zetaShort,
		},
		{
			name:        "distinct versions both kept",
			config:      map[string]any{"thresholds.keep_best": 1.0, "thresholds.review": 0.99},
			stored:      zetaShort,
			offered:     zetaLong,
			disposition: domain.DispositionKeepAll,
			action:      domain.ActionInserted,
			storedLen:   2,
			content:     zetaShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newIdeaService(t, tt.config)
			ctx := context.Background()

			_, err := service.Ingest(ctx, ideaDoc("### Zeta", tt.stored))
			require.NoError(t, err)

			report, err := service.Ingest(ctx, ideaDoc("### Zeta", tt.offered))
			require.NoError(t, err)
			require.Len(t, report.Results, 1)

			res := report.Results[0]
			assert.Equal(t, domain.AdmissionReconcile, res.Status)
			assert.Equal(t, []string{"idea_001"}, res.MatchedIDs)
			assert.Greater(t, res.MaxSimilarity, 0.8)
			require.NotNil(t, res.Recommendation)
			assert.Equal(t, tt.disposition, res.Recommendation.Disposition)
			assert.Equal(t, tt.action, res.Action)

			assert.Equal(t, tt.storedLen, store.Len())
			first, err := store.Get(ctx, "idea_001")
			require.NoError(t, err)
			assert.Equal(t, tt.content, first.Content)
		})
	}
}

func TestIdeaService_Admit_DoesNotApplyReconciliation(t *testing.T) {
	service, store := newIdeaService(t, nil)
	ctx := context.Background()

	_, err := service.Ingest(ctx, ideaDoc("### Zeta", zetaShort))
	require.NoError(t, err)
	parsed, err := service.Parse(ctx, ideaDoc("### Zeta", zetaLong))
	require.NoError(t, err)

	res, err := service.Admit(ctx, parsed.Ideas[0])

	require.NoError(t, err)
	assert.Equal(t, domain.AdmissionReconcile, res.Status)
	assert.Equal(t, domain.ActionPending, res.Action)
	stored, _ := store.Get(ctx, "idea_001")
	assert.Equal(t, zetaShort, stored.Content)
}

func TestIdeaService_Admit_IgnoresCallerID(t *testing.T) {
	service, _ := newIdeaService(t, nil)

	res, err := service.Admit(context.Background(), domain.IdeaRecord{ID: "mine", Title: "Solo", Content: "only one"})

	require.NoError(t, err)
	assert.Equal(t, domain.AdmissionNew, res.Status)
	assert.Equal(t, "idea_001", res.Idea.ID)
}

func TestIdeaService_Admit_FingerprintsContent(t *testing.T) {
	service, store := newIdeaService(t, nil)
	ctx := context.Background()
	idea := domain.IdeaRecord{Title: "Zeta", Content: zetaShort}

	first, err := service.Admit(ctx, idea)
	require.NoError(t, err)
	require.Equal(t, domain.AdmissionNew, first.Status)

	want, ok := textnorm.FingerprintText(zetaShort)
	require.True(t, ok)
	stored, err := store.Get(ctx, first.Idea.ID)
	require.NoError(t, err)
	assert.Equal(t, want, stored.ContentHash)
	assert.Greater(t, stored.ImportanceScore, 0.0)

	second, err := service.Admit(ctx, idea)

	require.NoError(t, err)
	assert.Equal(t, domain.AdmissionExactDuplicate, second.Status)
	assert.Equal(t, domain.ActionDropped, second.Action)
	assert.Equal(t, []string{first.Idea.ID}, second.MatchedIDs)
	assert.Equal(t, 1, store.Len())
}

func TestIdeaService_Admit_ReplacesStaleHash(t *testing.T) {
	service, store := newIdeaService(t, nil)
	ctx := context.Background()

	_, err := service.Admit(ctx, domain.IdeaRecord{Title: "Zeta", Content: zetaShort})
	require.NoError(t, err)

	res, err := service.Admit(ctx, domain.IdeaRecord{Title: "Zeta", Content: zetaShort, ContentHash: "stale"})

	require.NoError(t, err)
	assert.Equal(t, domain.AdmissionExactDuplicate, res.Status)
	assert.Equal(t, 1, store.Len())
}

func TestIdeaService_Ingest_CancelledContext(t *testing.T) {
	service, store := newIdeaService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Ingest(ctx, ideaDoc("### Zeta", zetaShort))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.Len())
}

func TestIdeaService_IngestFiles(t *testing.T) {
	loader := &mockLoader{files: map[string]string{
		"a.md": "### Zeta\n" + zetaShort + "\n",
		"b.md": "### Filament\na filament model of space\n",
	}}
	store := memory.NewIdeaStore()
	service := NewIdeaService(store, nil, loader, nil, testCatalog())

	report, err := service.IngestFiles(context.Background(), []string{"a.md", "missing.md", "b.md"})

	require.NoError(t, err)
	assert.Equal(t, 2, report.Parsed)
	assert.Equal(t, []string{"missing.md"}, report.Failed)
	assert.Equal(t, 2, store.Len())
}

func TestIdeaService_IngestFiles_NoLoader(t *testing.T) {
	service, _ := newIdeaService(t, nil)

	_, err := service.IngestFiles(context.Background(), []string{"a.md"})
	assert.Error(t, err)
}

func TestIdeaService_Reconcile(t *testing.T) {
	service, _ := newIdeaService(t, map[string]any{"thresholds.admission": 0.99})
	ctx := context.Background()

	_, err := service.Ingest(ctx, ideaDoc("### Zeta", zetaShort, "### Zeta", zetaLong))
	require.NoError(t, err)

	rec, err := service.Reconcile(ctx, []string{"idea_001", "idea_002"})
	require.NoError(t, err)
	assert.Equal(t, domain.DispositionKeepBest, rec.Disposition)
	assert.Equal(t, "idea_002", rec.Best().Idea.ID)

	_, err = service.Reconcile(ctx, []string{"idea_404"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.Reconcile(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIdeaService_Integrate(t *testing.T) {
	service, _ := newIdeaService(t, nil)
	ctx := context.Background()
	_, err := service.Ingest(ctx, ideaDoc("### Zeta", zetaShort))
	require.NoError(t, err)

	dup, err := service.Integrate(ctx, "Zeta\n"+zetaShort, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.IntegrationDuplicate, dup.Status)
	assert.Equal(t, domain.IntegrationIgnore, dup.Action)
	assert.Equal(t, "idea_001", dup.MostSimilarID)
	assert.Empty(t, dup.RecommendedSection)

	reference := ideaDoc(
		"# Notebook",
		"## Riemann",
		"notes on zeta",
		"## Strings",
		"notes on filament",
	)
	fresh, err := service.Integrate(ctx, "ظاهرة جديدة تماما في الفيزياء filament", reference)
	require.NoError(t, err)
	assert.Equal(t, domain.IntegrationNew, fresh.Status)
	assert.Equal(t, domain.IntegrationAdd, fresh.Action)
	assert.Equal(t, "Strings", fresh.RecommendedSection)
	assert.InDelta(t, 1.0, fresh.SectionScore, 1e-9)

	unplaced, err := service.Integrate(ctx, "نص بلا مفاهيم", reference)
	require.NoError(t, err)
	assert.Equal(t, "Appendix", unplaced.RecommendedSection)
}

func TestIdeaService_ListGetRemove(t *testing.T) {
	service, _ := newIdeaService(t, nil)
	ctx := context.Background()
	_, err := service.Ingest(ctx, ideaDoc("### Zeta", zetaShort, "### Filament", "a filament model of space"))
	require.NoError(t, err)

	list, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := service.Get(ctx, "idea_002")
	require.NoError(t, err)
	assert.Equal(t, "Filament", got.Title)

	require.NoError(t, service.Remove(ctx, "idea_002"))
	_, err = service.Get(ctx, "idea_002")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, service.Remove(ctx, "idea_002"), domain.ErrNotFound)
}

func TestIdeaService_Stats(t *testing.T) {
	service, store := newIdeaService(t, nil)
	ctx := context.Background()
	_, _ = store.Insert(ctx, domain.IdeaRecord{
		Title: "a", Category: "riemann", Date: "2025-08-01",
		Equations: []string{"$x$", "$y$"}, Keywords: []string{"zeta"}, ImportanceScore: 12,
	})
	_, _ = store.Insert(ctx, domain.IdeaRecord{
		Title: "b", Category: "riemann", Date: "2025-08-15",
		Keywords: []string{"zeta", "prime"}, ImportanceScore: 6,
	})
	_, _ = store.Insert(ctx, domain.IdeaRecord{Title: "c", Category: "general", ImportanceScore: 1})

	stats, err := service.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalIdeas)
	assert.Equal(t, map[string]int{"riemann": 2, "general": 1}, stats.Categories)
	assert.Equal(t, 2, stats.EquationCount)
	assert.Equal(t, map[string]int{"zeta": 2, "prime": 1}, stats.KeywordFrequency)
	assert.Equal(t, map[string]int{"high": 1, "medium": 1, "low": 1}, stats.ImportanceDistribution)
	assert.Equal(t, map[string]int{"2025-08": 2}, stats.MonthlyDistribution)
}

func TestIdeaService_Stats_Empty(t *testing.T) {
	service, _ := newIdeaService(t, nil)

	stats, err := service.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalIdeas)
	assert.Equal(t, map[string]int{"high": 0, "medium": 0, "low": 0}, stats.ImportanceDistribution)
}

func TestIdeaService_SaveAndLoad(t *testing.T) {
	snapshots := &mockSnapshotStore{}
	store := memory.NewIdeaStore()
	service := NewIdeaService(store, snapshots, nil, nil, testCatalog())
	ctx := context.Background()

	_, err := service.Ingest(ctx, ideaDoc("### Zeta", zetaShort))
	require.NoError(t, err)
	require.NoError(t, service.Save(ctx))
	require.Len(t, snapshots.ideas, 1)

	restoredStore := memory.NewIdeaStore()
	restored := NewIdeaService(restoredStore, snapshots, nil, nil, testCatalog())
	require.NoError(t, restored.Load(ctx))

	got, err := restored.Get(ctx, "idea_001")
	require.NoError(t, err)
	assert.Equal(t, zetaShort, got.Content)
}

func TestIdeaService_SaveAndLoad_Errors(t *testing.T) {
	snapshots := &mockSnapshotStore{saveErr: errors.New("disk full"), loadErr: errors.New("corrupt")}
	service := NewIdeaService(memory.NewIdeaStore(), snapshots, nil, nil, testCatalog())
	ctx := context.Background()

	assert.ErrorContains(t, service.Save(ctx), "disk full")
	assert.ErrorContains(t, service.Load(ctx), "corrupt")
}

func TestIdeaService_SaveAndLoad_NoSnapshotStore(t *testing.T) {
	service, _ := newIdeaService(t, nil)
	ctx := context.Background()

	assert.NoError(t, service.Save(ctx))
	assert.NoError(t, service.Load(ctx))
}
