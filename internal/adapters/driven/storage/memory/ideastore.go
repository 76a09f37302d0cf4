package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
)

// Ensure IdeaStore implements the interface.
var _ driven.IdeaStore = (*IdeaStore)(nil)

const idPrefix = "idea_"

// IdeaStore is the in-memory idea database.
// Ideas are kept in insertion order; a replaced idea keeps its position.
type IdeaStore struct {
	mu    sync.RWMutex
	ideas map[string]domain.IdeaRecord
	order []string
	next  int
}

// NewIdeaStore creates an empty idea store.
func NewIdeaStore() *IdeaStore {
	return &IdeaStore{
		ideas: make(map[string]domain.IdeaRecord),
		next:  1,
	}
}

// Insert stores idea under the next sequential ID.
func (s *IdeaStore) Insert(_ context.Context, idea domain.IdeaRecord) (domain.IdeaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idea.ID = fmt.Sprintf("%s%03d", idPrefix, s.next)
	s.next++
	s.ideas[idea.ID] = idea
	s.order = append(s.order, idea.ID)
	return idea, nil
}

// Get retrieves an idea by ID.
func (s *IdeaStore) Get(_ context.Context, id string) (domain.IdeaRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idea, ok := s.ideas[id]
	if !ok {
		return domain.IdeaRecord{}, domain.ErrNotFound
	}
	return idea, nil
}

// Replace overwrites the idea stored under id.
func (s *IdeaStore) Replace(_ context.Context, id string, idea domain.IdeaRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ideas[id]; !ok {
		return domain.ErrNotFound
	}
	idea.ID = id
	s.ideas[id] = idea
	return nil
}

// Remove deletes an idea.
func (s *IdeaStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ideas[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.ideas, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all ideas in insertion order.
func (s *IdeaStore) List(_ context.Context) ([]domain.IdeaRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.IdeaRecord, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.ideas[id])
	}
	return result, nil
}

// FindByHash returns the first idea in insertion order with the given hash.
func (s *IdeaStore) FindByHash(_ context.Context, hash string) (domain.IdeaRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if hash == "" {
		return domain.IdeaRecord{}, domain.ErrNotFound
	}
	for _, id := range s.order {
		if s.ideas[id].ContentHash == hash {
			return s.ideas[id], nil
		}
	}
	return domain.IdeaRecord{}, domain.ErrNotFound
}

// Restore replaces the database with ideas.
// Ideas without an ID, or with a duplicate ID, are rejected.
func (s *IdeaStore) Restore(_ context.Context, ideas []domain.IdeaRecord) error {
	restored := make(map[string]domain.IdeaRecord, len(ideas))
	order := make([]string, 0, len(ideas))
	next := 1

	for _, idea := range ideas {
		if idea.ID == "" {
			return fmt.Errorf("%w: idea without id", domain.ErrInvalidInput)
		}
		if _, dup := restored[idea.ID]; dup {
			return fmt.Errorf("%w: idea %s", domain.ErrAlreadyExists, idea.ID)
		}
		restored[idea.ID] = idea
		order = append(order, idea.ID)
		if n := sequence(idea.ID); n >= next {
			next = n + 1
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ideas = restored
	s.order = order
	s.next = next
	return nil
}

// Len returns the number of stored ideas.
func (s *IdeaStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// sequence extracts N from "idea_N", or 0 for foreign IDs.
func sequence(id string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(id, idPrefix))
	if err != nil || !strings.HasPrefix(id, idPrefix) {
		return 0
	}
	return n
}
