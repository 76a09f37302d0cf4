package driven

import (
	"context"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// DocumentLoader reads a Document from a location such as a file path.
type DocumentLoader interface {
	Load(ctx context.Context, uri string) (*domain.Document, error)
}

// ChangeType describes how a watched document changed.
type ChangeType string

// Change types.
const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports a change to a watched document.
type ChangeEvent struct {
	Type ChangeType
	URI  string
}

// DocumentWatcher streams change events for a document until ctx is done.
type DocumentWatcher interface {
	Watch(ctx context.Context, uri string) (<-chan ChangeEvent, error)
}
