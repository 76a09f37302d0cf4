package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/ideaforge/internal/analysis/sections"
	"github.com/custodia-labs/ideaforge/internal/analysis/similarity"
	"github.com/custodia-labs/ideaforge/internal/analysis/textnorm"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
	"github.com/custodia-labs/ideaforge/internal/ideas/parser"
	"github.com/custodia-labs/ideaforge/internal/ideas/quality"
	"github.com/custodia-labs/ideaforge/internal/ideas/reconcile"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

// Ensure IdeaService implements the interface.
var _ driving.IdeaService = (*IdeaService)(nil)

// outlineLevel is the heading level whose sections receive placed ideas.
const outlineLevel = 2

// IdeaService manages the idea database.
type IdeaService struct {
	store     driven.IdeaStore
	snapshots driven.SnapshotStore
	loader    driven.DocumentLoader
	settings  driving.SettingsService
	vocab     vocabulary

	// admitMu serialises admission so a check and its insert see the same
	// database.
	admitMu sync.Mutex
}

// NewIdeaService creates a new idea service.
// The snapshots and loader parameters are optional (can be nil).
func NewIdeaService(
	store driven.IdeaStore,
	snapshots driven.SnapshotStore,
	loader driven.DocumentLoader,
	settings driving.SettingsService,
	catalog domain.Catalog,
) *IdeaService {
	return &IdeaService{
		store:     store,
		snapshots: snapshots,
		loader:    loader,
		settings:  settings,
		vocab:     newVocabulary(catalog),
	}
}

// Parse splits doc into ideas and scores each one. Nothing is stored.
func (s *IdeaService) Parse(ctx context.Context, doc *domain.Document) (domain.ParseResult, error) {
	tk, err := s.toolkit(ctx)
	if err != nil {
		return domain.ParseResult{}, err
	}
	return s.parse(tk, doc)
}

func (s *IdeaService) parse(tk *toolkit, doc *domain.Document) (domain.ParseResult, error) {
	if doc == nil {
		return domain.ParseResult{}, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}

	res := parser.New(parser.ConfigFromCatalog(tk.catalog)).Parse(doc)
	for i := range res.Ideas {
		res.Ideas[i].ImportanceScore = tk.quality.Score(res.Ideas[i])
	}
	logger.Debug("parsed %s: %d ideas, %d skipped", doc.URI, len(res.Ideas), res.Skipped)
	return res, nil
}

// Ingest parses doc and admits every idea, applying each reconciliation.
func (s *IdeaService) Ingest(ctx context.Context, doc *domain.Document) (driving.IngestReport, error) {
	tk, err := s.toolkit(ctx)
	if err != nil {
		return driving.IngestReport{}, err
	}

	logger.Section("Ingest")
	parsed, err := s.parse(tk, doc)
	if err != nil {
		return driving.IngestReport{}, err
	}

	report := driving.IngestReport{
		Parsed:   len(parsed.Ideas),
		Skipped:  parsed.Skipped,
		Warnings: parsed.Warnings,
		Results:  make([]domain.AdmissionResult, 0, len(parsed.Ideas)),
	}

	s.admitMu.Lock()
	defer s.admitMu.Unlock()

	for _, idea := range parsed.Ideas {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := s.admit(ctx, tk, idea)
		if err != nil {
			return report, err
		}
		if res.Status == domain.AdmissionReconcile {
			if err := s.apply(ctx, &res); err != nil {
				return report, err
			}
		}
		logger.Debug("%q: %s (%s)", idea.Title, res.Status, res.Action)
		report.Results = append(report.Results, res)
	}

	logger.Info("Ingested %s: %d new, %d duplicates, %d reconciled",
		doc.URI,
		report.Count(domain.AdmissionNew),
		report.Count(domain.AdmissionExactDuplicate),
		report.Count(domain.AdmissionReconcile))
	return report, nil
}

// IngestFiles loads and ingests each file. Files that cannot be read are
// logged, listed in Failed, and do not stop the batch.
func (s *IdeaService) IngestFiles(ctx context.Context, uris []string) (driving.IngestReport, error) {
	if s.loader == nil {
		return driving.IngestReport{}, errors.New("document loader not configured")
	}

	var report driving.IngestReport
	for _, uri := range uris {
		doc, err := s.loader.Load(ctx, uri)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			logger.Warn("Skipping %s: %v", uri, err)
			report.Failed = append(report.Failed, uri)
			continue
		}

		part, err := s.Ingest(ctx, doc)
		report.Parsed += part.Parsed
		report.Skipped += part.Skipped
		report.Results = append(report.Results, part.Results...)
		report.Warnings = append(report.Warnings, part.Warnings...)
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

// Admit offers one idea to the database. New ideas are inserted; a
// reconciliation is reported as pending and not applied.
func (s *IdeaService) Admit(ctx context.Context, idea domain.IdeaRecord) (domain.AdmissionResult, error) {
	tk, err := s.toolkit(ctx)
	if err != nil {
		return domain.AdmissionResult{}, err
	}

	s.admitMu.Lock()
	defer s.admitMu.Unlock()
	return s.admit(ctx, tk, idea)
}

// admit checks the exact hash first, then the word overlap of the bodies.
// The fingerprint and importance are always derived from the current content.
// Callers hold admitMu.
func (s *IdeaService) admit(ctx context.Context, tk *toolkit, idea domain.IdeaRecord) (domain.AdmissionResult, error) {
	idea.ID = ""
	idea.ContentHash, _ = textnorm.FingerprintText(idea.Body())
	idea.ImportanceScore = tk.quality.Score(idea)
	res := domain.AdmissionResult{Idea: idea}

	if idea.ContentHash != "" {
		match, err := s.store.FindByHash(ctx, idea.ContentHash)
		switch {
		case err == nil:
			res.Status = domain.AdmissionExactDuplicate
			res.MatchedIDs = []string{match.ID}
			res.MaxSimilarity = 1
			res.Action = domain.ActionDropped
			return res, nil
		case !errors.Is(err, domain.ErrNotFound):
			return res, fmt.Errorf("find by hash: %w", err)
		}
	}

	existing, err := s.store.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list ideas: %w", err)
	}

	type match struct {
		idea  domain.IdeaRecord
		score float64
	}
	var matches []match
	for _, rec := range existing {
		score := similarity.WordJaccard(idea.Body(), rec.Body())
		if score > res.MaxSimilarity {
			res.MaxSimilarity = score
		}
		if score > tk.settings.Thresholds.Admission {
			matches = append(matches, match{idea: rec, score: score})
		}
	}

	if len(matches) == 0 {
		stored, err := s.store.Insert(ctx, idea)
		if err != nil {
			return res, fmt.Errorf("insert idea: %w", err)
		}
		res.Status = domain.AdmissionNew
		res.Idea = stored
		res.Action = domain.ActionInserted
		return res, nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	candidates := []domain.IdeaRecord{idea}
	for _, m := range matches {
		res.MatchedIDs = append(res.MatchedIDs, m.idea.ID)
		candidates = append(candidates, m.idea)
	}

	rec, err := tk.reconciler.Reconcile(candidates)
	if err != nil {
		return res, err
	}
	res.Status = domain.AdmissionReconcile
	res.Recommendation = &rec
	res.Action = domain.ActionPending
	return res, nil
}

// apply carries out a reconciliation. Only the offered idea is ever
// inserted or dropped, and a keep_best replacement overwrites the most
// similar record in place. Stored records are never evicted.
func (s *IdeaService) apply(ctx context.Context, res *domain.AdmissionResult) error {
	switch res.Recommendation.Disposition {
	case domain.DispositionKeepBest:
		if res.Recommendation.Best().Idea.ID != "" {
			res.Action = domain.ActionDropped
			return nil
		}
		target := res.MatchedIDs[0]
		if err := s.store.Replace(ctx, target, res.Idea); err != nil {
			return fmt.Errorf("replace %s: %w", target, err)
		}
		res.Idea.ID = target
		res.Action = domain.ActionReplaced
	case domain.DispositionKeepAll, domain.DispositionKeep:
		stored, err := s.store.Insert(ctx, res.Idea)
		if err != nil {
			return fmt.Errorf("insert idea: %w", err)
		}
		res.Idea = stored
		res.Action = domain.ActionInserted
	default:
		res.Action = domain.ActionPending
	}
	return nil
}

// Reconcile compares stored ideas as versions of one another.
func (s *IdeaService) Reconcile(ctx context.Context, ids []string) (domain.Recommendation, error) {
	tk, err := s.toolkit(ctx)
	if err != nil {
		return domain.Recommendation{}, err
	}

	candidates := make([]domain.IdeaRecord, 0, len(ids))
	for _, id := range ids {
		idea, err := s.store.Get(ctx, id)
		if err != nil {
			return domain.Recommendation{}, fmt.Errorf("idea %s: %w", id, err)
		}
		candidates = append(candidates, idea)
	}
	return tk.reconciler.Reconcile(candidates)
}

// Integrate classifies text against the database and, when reference is
// set, recommends the reference section it belongs in.
func (s *IdeaService) Integrate(
	ctx context.Context, text string, reference *domain.Document,
) (domain.IntegrationVerdict, error) {
	tk, err := s.toolkit(ctx)
	if err != nil {
		return domain.IntegrationVerdict{}, err
	}

	existing, err := s.store.List(ctx)
	if err != nil {
		return domain.IntegrationVerdict{}, fmt.Errorf("list ideas: %w", err)
	}

	assessor := quality.NewAssessor(tk.catalog.Markers, tk.concepts)
	verdict := reconcile.NewClassifier(tk.similarity, assessor, tk.settings.Thresholds).Classify(text, existing)

	if reference != nil {
		outline := sections.Outline(reference, outlineLevel)
		verdict.RecommendedSection, verdict.SectionScore = reconcile.Place(text, outline, tk.concepts, tk.catalog.DefaultSection)
	}
	return verdict, nil
}

// List returns all ideas in insertion order.
func (s *IdeaService) List(ctx context.Context) ([]domain.IdeaRecord, error) {
	return s.store.List(ctx)
}

// Get returns one idea.
func (s *IdeaService) Get(ctx context.Context, id string) (domain.IdeaRecord, error) {
	return s.store.Get(ctx, id)
}

// Remove deletes an idea.
func (s *IdeaService) Remove(ctx context.Context, id string) error {
	return s.store.Remove(ctx, id)
}

// Stats summarises the database.
func (s *IdeaService) Stats(ctx context.Context) (domain.Statistics, error) {
	ideas, err := s.store.List(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}

	stats := domain.Statistics{
		TotalIdeas:       len(ideas),
		Categories:       make(map[string]int),
		KeywordFrequency: make(map[string]int),
		ImportanceDistribution: map[string]int{
			domain.ImportanceHigh:   0,
			domain.ImportanceMedium: 0,
			domain.ImportanceLow:    0,
		},
		MonthlyDistribution: make(map[string]int),
	}
	for _, idea := range ideas {
		stats.Categories[idea.Category]++
		stats.EquationCount += len(idea.Equations)
		for _, kw := range idea.Keywords {
			stats.KeywordFrequency[kw]++
		}
		stats.ImportanceDistribution[domain.ImportanceBand(idea.ImportanceScore)]++
		if month := idea.Month(); month != "" {
			stats.MonthlyDistribution[month]++
		}
	}
	return stats, nil
}

// Load restores the database from the snapshot store.
// Without a snapshot store it does nothing.
func (s *IdeaService) Load(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	ideas, err := s.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if err := s.store.Restore(ctx, ideas); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	logger.Debug("restored %d ideas", len(ideas))
	return nil
}

// Save writes the database to the snapshot store.
// Without a snapshot store it does nothing.
func (s *IdeaService) Save(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	ideas, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	if err := s.snapshots.Save(ctx, ideas); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	logger.Debug("saved %d ideas", len(ideas))
	return nil
}

func (s *IdeaService) toolkit(ctx context.Context) (*toolkit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buildToolkit(s.settings, s.vocab)
}
