package driving

import (
	"context"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// IngestReport summarises ingesting one or more documents.
type IngestReport struct {
	Parsed   int                      `json:"parsed"`
	Skipped  int                      `json:"skipped"`
	Results  []domain.AdmissionResult `json:"results"`
	Warnings []string                 `json:"warnings,omitempty"`
	Failed   []string                 `json:"failed,omitempty"`
}

// Count returns how many results had the given status.
func (r IngestReport) Count(status domain.AdmissionStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// IdeaService manages the idea database.
type IdeaService interface {
	// Parse splits a document into scored ideas without storing them.
	Parse(ctx context.Context, doc *domain.Document) (domain.ParseResult, error)

	// Ingest parses doc and admits every idea, applying reconciliations.
	Ingest(ctx context.Context, doc *domain.Document) (IngestReport, error)

	// IngestFiles loads and ingests each file; unreadable files are
	// reported in IngestReport.Failed and do not stop the batch.
	IngestFiles(ctx context.Context, uris []string) (IngestReport, error)

	// Admit offers one idea to the database without applying a reconciliation.
	Admit(ctx context.Context, idea domain.IdeaRecord) (domain.AdmissionResult, error)

	// Reconcile compares stored ideas as versions of one another.
	Reconcile(ctx context.Context, ids []string) (domain.Recommendation, error)

	// Integrate classifies a new idea text against the database and, when
	// reference is non-nil, recommends a section of it.
	Integrate(ctx context.Context, text string, reference *domain.Document) (domain.IntegrationVerdict, error)

	// List returns all ideas in insertion order.
	List(ctx context.Context) ([]domain.IdeaRecord, error)

	// Get returns one idea.
	Get(ctx context.Context, id string) (domain.IdeaRecord, error)

	// Remove deletes an idea.
	Remove(ctx context.Context, id string) error

	// Stats summarises the database.
	Stats(ctx context.Context) (domain.Statistics, error)

	// Load restores the database from the snapshot store.
	Load(ctx context.Context) error

	// Save writes the database to the snapshot store.
	Save(ctx context.Context) error
}
