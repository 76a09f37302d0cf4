package driven

import (
	"context"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// IdeaStore is the idea database: a mapping from idea ID to IdeaRecord
// that remembers insertion order. Records are only removed explicitly.
type IdeaStore interface {
	// Insert stores idea under the next sequential ID (idea_001, idea_002,
	// ...) and returns the stored record. IDs are never reused.
	Insert(ctx context.Context, idea domain.IdeaRecord) (domain.IdeaRecord, error)

	// Get retrieves an idea by ID.
	Get(ctx context.Context, id string) (domain.IdeaRecord, error)

	// Replace overwrites the idea stored under id, keeping the ID.
	Replace(ctx context.Context, id string, idea domain.IdeaRecord) error

	// Remove deletes an idea.
	Remove(ctx context.Context, id string) error

	// List returns all ideas in insertion order.
	List(ctx context.Context) ([]domain.IdeaRecord, error)

	// FindByHash returns the first idea with the given content hash.
	FindByHash(ctx context.Context, hash string) (domain.IdeaRecord, error)

	// Restore replaces the whole database with ideas, keeping their IDs
	// and order, and advances the ID counter past them.
	Restore(ctx context.Context, ideas []domain.IdeaRecord) error
}

// SnapshotStore persists the idea database between invocations.
type SnapshotStore interface {
	// Save writes ideas, replacing any previous snapshot.
	Save(ctx context.Context, ideas []domain.IdeaRecord) error

	// Load reads the snapshot. A missing snapshot yields no ideas and no error.
	Load(ctx context.Context) ([]domain.IdeaRecord, error)

	// Close releases resources.
	Close() error
}
