// Package reconcile decides what to do with repeated or related ideas.
//
// Reconciler ranks versions of one idea and recommends keeping the best,
// reviewing manually, or keeping all. Classifier places a new idea text
// against a stored collection, and Place picks the reference section it
// fits best.
package reconcile

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

// QualityScorer scores an idea.
type QualityScorer interface {
	Score(idea domain.IdeaRecord) float64
}

// TextSimilarity compares two texts in [0, 1].
type TextSimilarity interface {
	Blended(a, b string) float64
}

// Thresholds are the reconciler's cut-offs; both comparisons are strict.
type Thresholds struct {
	KeepBest float64
	Review   float64
}

// DefaultThresholds returns the default cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{KeepBest: 0.8, Review: 0.5}
}

// Reconciler compares versions of an idea.
type Reconciler struct {
	scorer     QualityScorer
	similarity TextSimilarity
	thresholds Thresholds
}

// New creates a Reconciler.
func New(scorer QualityScorer, sim TextSimilarity, th Thresholds) *Reconciler {
	return &Reconciler{scorer: scorer, similarity: sim, thresholds: th}
}

// Reconcile ranks candidates by quality, highest first with ties kept in
// input order, builds their pairwise similarity matrix, and recommends a
// disposition from the largest off-diagonal similarity.
func (r *Reconciler) Reconcile(candidates []domain.IdeaRecord) (domain.Recommendation, error) {
	if len(candidates) == 0 {
		return domain.Recommendation{}, fmt.Errorf("%w: no candidates to reconcile", domain.ErrInvalidInput)
	}

	ranked := make([]domain.RankedVersion, len(candidates))
	for i, c := range candidates {
		ranked[i] = domain.RankedVersion{Idea: c, Quality: r.scorer.Score(c)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quality > ranked[j].Quality
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	n := len(ranked)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1
	}
	maxSim := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := r.similarity.Blended(ranked[i].Idea.Text(), ranked[j].Idea.Text())
			matrix[i][j], matrix[j][i] = s, s
			maxSim = max(maxSim, s)
		}
	}

	rec := domain.Recommendation{Ranked: ranked, Similarity: matrix, MaxSimilarity: maxSim}
	switch {
	case n == 1:
		rec.Disposition = domain.DispositionKeep
	case maxSim > r.thresholds.KeepBest:
		rec.Disposition = domain.DispositionKeepBest
	case maxSim > r.thresholds.Review:
		rec.Disposition = domain.DispositionReview
	default:
		rec.Disposition = domain.DispositionKeepAll
	}
	logger.Debug("reconciled %d versions: max similarity %.3f, %s", n, maxSim, rec.Disposition)
	return rec, nil
}
