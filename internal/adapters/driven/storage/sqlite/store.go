package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
)

// migrationFiles holds the versioned schema, applied in file name order.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

// Store persists idea snapshots in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at path and applies migrations.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path is empty", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// WAL mode lets readers proceed while a snapshot is written
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	schema, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}
	if err := s.migrate(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save replaces the stored snapshot with ideas, preserving their order.
func (s *Store) Save(ctx context.Context, ideas []domain.IdeaRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM ideas"); err != nil {
		return fmt.Errorf("clearing ideas: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ideas (position, id, title, content, category, date, equations, keywords,
			similarity_hash, importance_score, start_line, end_line)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, idea := range ideas {
		equations, err := marshalList(idea.Equations)
		if err != nil {
			return fmt.Errorf("marshalling equations of %s: %w", idea.ID, err)
		}
		keywords, err := marshalList(idea.Keywords)
		if err != nil {
			return fmt.Errorf("marshalling keywords of %s: %w", idea.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, i, idea.ID, idea.Title, idea.Content, idea.Category,
			idea.Date, equations, keywords, idea.ContentHash, idea.ImportanceScore,
			int(idea.StartLine), int(idea.EndLine)); err != nil {
			return fmt.Errorf("saving idea %s: %w", idea.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Load returns the stored ideas in their saved order.
func (s *Store) Load(ctx context.Context) ([]domain.IdeaRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, category, date, equations, keywords,
			similarity_hash, importance_score, start_line, end_line
		FROM ideas ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying ideas: %w", err)
	}
	defer rows.Close()

	var ideas []domain.IdeaRecord
	for rows.Next() {
		var idea domain.IdeaRecord
		var equations, keywords string
		var start, end int
		if err := rows.Scan(&idea.ID, &idea.Title, &idea.Content, &idea.Category, &idea.Date,
			&equations, &keywords, &idea.ContentHash, &idea.ImportanceScore, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning idea: %w", err)
		}
		if err := json.Unmarshal([]byte(equations), &idea.Equations); err != nil {
			return nil, fmt.Errorf("unmarshalling equations of %s: %w", idea.ID, err)
		}
		if err := json.Unmarshal([]byte(keywords), &idea.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshalling keywords of %s: %w", idea.ID, err)
		}
		idea.StartLine = domain.Location(start)
		idea.EndLine = domain.Location(end)
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ideas: %w", err)
	}

	return ideas, nil
}

// marshalList encodes a string list, storing nil as an empty array.
func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// migrate runs all pending migrations and records their versions.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_ideas.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
