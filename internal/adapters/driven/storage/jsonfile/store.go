// Package jsonfile stores idea snapshots as a JSON object keyed by idea id.
//
// The file is a flat {"idea_001": {...}, "idea_002": {...}} map. Key order in
// the file is the collection order: Load reads it token by token and Save
// writes keys in slice order. Writes go to a temporary file that is renamed
// into place.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

// Store is a JSON file snapshot store.
type Store struct {
	path string
}

// NewStore creates a store for path. The file is not touched until Save.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: snapshot path is empty", domain.ErrInvalidInput)
	}
	return &Store{path: path}, nil
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Close is a no-op; the file is only open during Load and Save.
func (s *Store) Close() error {
	return nil
}

// Load reads the snapshot. A missing file yields no ideas.
func (s *Store) Load(ctx context.Context) ([]domain.IdeaRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	ideas, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", s.path, err)
	}
	return ideas, nil
}

// Save writes ideas atomically in slice order.
func (s *Store) Save(ctx context.Context, ideas []domain.IdeaRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(ideas)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// encode renders ideas as an indented object keyed by id.
func encode(ideas []domain.IdeaRecord) ([]byte, error) {
	var buf bytes.Buffer
	seen := make(map[string]bool, len(ideas))

	buf.WriteString("{")
	for i, idea := range ideas {
		if idea.ID == "" {
			return nil, fmt.Errorf("%w: idea %d has no id", domain.ErrInvalidInput, i)
		}
		if seen[idea.ID] {
			return nil, fmt.Errorf("%w: duplicate id %s", domain.ErrAlreadyExists, idea.ID)
		}
		seen[idea.ID] = true

		key, err := json.Marshal(idea.ID)
		if err != nil {
			return nil, err
		}
		value, err := json.MarshalIndent(idea, "  ", "  ")
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	if len(ideas) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// decode reads an id-keyed object, keeping key order.
// A record without an id field takes its key as id.
func decode(r io.Reader) ([]domain.IdeaRecord, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected object, got %v", domain.ErrUnsupportedType, tok)
	}

	var ideas []domain.IdeaRecord
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected key, got %v", domain.ErrUnsupportedType, tok)
		}

		var idea domain.IdeaRecord
		if err := dec.Decode(&idea); err != nil {
			return nil, fmt.Errorf("record %s: %w", key, err)
		}
		if idea.ID == "" {
			idea.ID = key
		}
		ideas = append(ideas, idea)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return ideas, nil
}
