package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideaforge/internal/analysis/similarity"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

func TestReconcile_NoCandidates(t *testing.T) {
	r := New(lengthScorer{}, fixedSimilarity(1), DefaultThresholds())

	_, err := r.Reconcile(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestReconcile_SingleCandidateKept(t *testing.T) {
	r := New(lengthScorer{}, fixedSimilarity(1), DefaultThresholds())

	rec, err := r.Reconcile([]domain.IdeaRecord{{ID: "idea_001", Content: "x"}})
	require.NoError(t, err)
	assert.Equal(t, domain.DispositionKeep, rec.Disposition)
	assert.Equal(t, [][]float64{{1}}, rec.Similarity)
	assert.Equal(t, 1, rec.Best().Rank)
}

func TestReconcile_Dispositions(t *testing.T) {
	tests := []struct {
		name     string
		sim      float64
		expected domain.Disposition
	}{
		{"near identical keeps best", 0.95, domain.DispositionKeepBest},
		{"exactly at keep-best threshold needs review", 0.8, domain.DispositionReview},
		{"partial overlap needs review", 0.6, domain.DispositionReview},
		{"exactly at review threshold keeps all", 0.5, domain.DispositionKeepAll},
		{"distinct keeps all", 0.3, domain.DispositionKeepAll},
	}

	candidates := []domain.IdeaRecord{
		{ID: "idea_001", Content: "short"},
		{ID: "idea_002", Content: "a much longer version"},
		{ID: "idea_003", Content: "medium text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(lengthScorer{}, fixedSimilarity(tt.sim), DefaultThresholds())
			rec, err := r.Reconcile(candidates)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rec.Disposition)
			assert.InDelta(t, tt.sim, rec.MaxSimilarity, 1e-9)
		})
	}
}

func TestReconcile_RankingAndMatrix(t *testing.T) {
	r := New(lengthScorer{}, fixedSimilarity(0.4), DefaultThresholds())
	candidates := []domain.IdeaRecord{
		{ID: "a", Content: "xx"},
		{ID: "b", Content: "xxxx"},
		{ID: "c", Content: "xx"},
	}

	rec, err := r.Reconcile(candidates)
	require.NoError(t, err)

	require.Len(t, rec.Ranked, 3)
	assert.Equal(t, "b", rec.Ranked[0].Idea.ID)
	assert.Equal(t, "a", rec.Ranked[1].Idea.ID, "ties keep input order")
	assert.Equal(t, "c", rec.Ranked[2].Idea.ID)
	assert.Equal(t, []int{1, 2, 3}, []int{rec.Ranked[0].Rank, rec.Ranked[1].Rank, rec.Ranked[2].Rank})

	for i := range rec.Similarity {
		assert.Equal(t, 1.0, rec.Similarity[i][i])
		for j := range rec.Similarity {
			assert.Equal(t, rec.Similarity[i][j], rec.Similarity[j][i])
		}
	}
}

func TestReconcile_WithRealSimilarity(t *testing.T) {
	sim := similarity.NewScorer(nil)
	r := New(lengthScorer{}, sim, DefaultThresholds())

	near, err := r.Reconcile([]domain.IdeaRecord{
		{Title: "Filament theory", Content: "Prime numbers arise from filament vibrations in a lattice."},
		{Title: "Filament theory", Content: "Prime numbers arise from filament vibrations in a lattice!"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DispositionKeepBest, near.Disposition)

	far, err := r.Reconcile([]domain.IdeaRecord{
		{Title: "Filament theory", Content: "Prime numbers arise from filament vibrations."},
		{Title: "طبخ", Content: "طبخ الأرز بالماء"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DispositionKeepAll, far.Disposition)
}

func TestClassifier(t *testing.T) {
	th := domain.DefaultSettings().Thresholds
	existing := []domain.IdeaRecord{{ID: "idea_001", Title: "Old", Content: "old text"}}

	tests := []struct {
		name   string
		sim    float64
		text   string
		status domain.IntegrationStatus
		action domain.IntegrationAction
	}{
		{"duplicate", 0.97, "same idea", domain.IntegrationDuplicate, domain.IntegrationIgnore},
		{"improvement", 0.8, "a better idea", domain.IntegrationImprovement, domain.IntegrationReplace},
		{"similar", 0.8, "another idea", domain.IntegrationSimilar, domain.IntegrationConsider},
		{"new", 0.2, "fresh", domain.IntegrationNew, domain.IntegrationAdd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(fixedSimilarity(tt.sim), fixedAssessor{}, th)
			v := c.Classify(tt.text, existing)
			assert.Equal(t, tt.status, v.Status)
			assert.Equal(t, tt.action, v.Action)
			assert.Equal(t, "idea_001", v.MostSimilarID)
			require.Len(t, v.Scores, 1)
			assert.NotEmpty(t, v.Reasoning)
		})
	}
}

func TestClassifier_EmptyCollection(t *testing.T) {
	c := NewClassifier(fixedSimilarity(1), fixedAssessor{}, domain.DefaultSettings().Thresholds)
	v := c.Classify("anything", nil)

	assert.Equal(t, domain.IntegrationNew, v.Status)
	assert.Empty(t, v.MostSimilarID)
	assert.Empty(t, v.Scores)
}

func TestPlace(t *testing.T) {
	detector := wordDetector{"zeta", "prime", "filament"}
	sections := []domain.Section{
		{Name: "Chapter 1", Lines: []string{"about filament and prime"}},
		{Name: "Chapter 2", Lines: []string{"about zeta"}},
		{Name: "Empty", Lines: []string{"nothing"}},
	}

	name, score := Place("a zeta idea", sections, detector, "Default")
	assert.Equal(t, "Chapter 2", name)
	assert.Equal(t, 1.0, score)

	name, score = Place("prime only", sections, detector, "Default")
	assert.Equal(t, "Chapter 1", name)
	assert.InDelta(t, 0.5, score, 1e-9)

	name, score = Place("unrelated", sections, detector, "Default")
	assert.Equal(t, "Default", name)
	assert.Equal(t, 0.0, score)

	name, _ = Place("zeta", sections, nil, "Default")
	assert.Equal(t, "Default", name)
}
