package services

import (
	"fmt"

	"github.com/custodia-labs/ideaforge/internal/analysis/concepts"
	"github.com/custodia-labs/ideaforge/internal/analysis/similarity"
	"github.com/custodia-labs/ideaforge/internal/analysis/window"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
	"github.com/custodia-labs/ideaforge/internal/ideas/quality"
	"github.com/custodia-labs/ideaforge/internal/ideas/reconcile"
)

// vocabulary is the compiled, immutable part of the toolkit.
type vocabulary struct {
	catalog  domain.Catalog
	concepts *concepts.Catalog
}

func newVocabulary(catalog domain.Catalog) vocabulary {
	return vocabulary{catalog: catalog, concepts: concepts.NewCatalog(catalog.Concepts)}
}

// toolkit bundles the analysis components configured from the current
// settings. It is rebuilt for every operation so settings changes apply
// without a restart.
type toolkit struct {
	vocabulary
	settings   domain.Settings
	similarity *similarity.Scorer
	finder     *window.Finder
	quality    *quality.Scorer
	reconciler *reconcile.Reconciler
}

func buildToolkit(settingsService driving.SettingsService, vocab vocabulary) (*toolkit, error) {
	settings := domain.DefaultSettings()
	if settingsService != nil {
		current, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		settings = *current
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	opts := []window.Option{window.WithBudget(settings.Analysis.ContextWordBudget)}
	if len(vocab.catalog.HeadingPatterns) > 0 {
		opts = append(opts, window.WithHeadingPatterns(vocab.catalog.HeadingPatterns...))
	}

	tk := &toolkit{
		vocabulary: vocab,
		settings:   settings,
		similarity: similarity.NewScorer(vocab.concepts,
			similarity.WithWeights(settings.Similarity.Sequence, settings.Similarity.Concept)),
		finder:  window.NewFinder(opts...),
		quality: quality.NewScorer(settings.Quality, vocab.catalog),
	}
	tk.reconciler = reconcile.New(tk.quality, tk.similarity, reconcile.Thresholds{
		KeepBest: settings.Thresholds.KeepBest,
		Review:   settings.Thresholds.Review,
	})
	return tk, nil
}
