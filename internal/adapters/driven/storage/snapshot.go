// Package storage selects a snapshot backend for a database path.
package storage

import (
	"path/filepath"
	"strings"

	"github.com/custodia-labs/ideaforge/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/ideaforge/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
)

// DefaultFileName is the snapshot name used when none is configured.
const DefaultFileName = "ideas_database.json"

// OpenSnapshot opens a snapshot store for path. Files ending in .db, .sqlite
// or .sqlite3 use SQLite; anything else is a JSON file.
func OpenSnapshot(path string) (driven.SnapshotStore, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		store, err := sqlite.NewStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := jsonfile.NewStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}
