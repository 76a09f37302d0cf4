package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "ideas_database.json"))
	require.NoError(t, err)
	return store
}

func TestNewStore_EmptyPath(t *testing.T) {
	_, err := NewStore("")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := newTestStore(t)

	ideas, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, ideas)
}

func TestStore_SaveLoadKeepsOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ideas := []domain.IdeaRecord{
		{ID: "idea_010", Title: "last inserted first", Keywords: []string{"طيف"}},
		{ID: "idea_002", Title: "second", Equations: []string{"$E=mc^2$"}, ImportanceScore: 7.5},
		{ID: "idea_007", Title: "third", StartLine: 4, EndLine: 8},
	}

	require.NoError(t, store.Save(ctx, ideas))
	loaded, err := store.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, ideas, loaded)
}

func TestStore_SaveFormat(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(context.Background(), []domain.IdeaRecord{{ID: "idea_001", Title: "t"}}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "{\n  \"idea_001\": {"))
	assert.Contains(t, text, `"similarity_hash": ""`)
	assert.Contains(t, text, `"importance_score": 0`)
}

func TestStore_SaveEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, nil))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(raw))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_SaveRejectsBadIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Save(ctx, []domain.IdeaRecord{{Title: "no id"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.Save(ctx, []domain.IdeaRecord{{ID: "a"}, {ID: "a"}})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_LoadHistoricFile(t *testing.T) {
	store := newTestStore(t)
	content := `{
  "idea_003": {"title": "الزمن الداخلي", "content": "x", "category": "نظرية",
               "date": "2025-07-26", "equations": [], "keywords": ["نظرية"],
               "similarity_hash": "h3", "importance_score": 12.0},
  "idea_001": {"id": "idea_001", "title": "first"}
}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0600))

	ideas, err := store.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, ideas, 2)
	assert.Equal(t, "idea_003", ideas[0].ID)
	assert.Equal(t, "الزمن الداخلي", ideas[0].Title)
	assert.Equal(t, 12.0, ideas[0].ImportanceScore)
	assert.Equal(t, "idea_001", ideas[1].ID)
}

func TestStore_LoadRejectsNonObject(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`[1, 2]`), 0600))

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestStore_LoadEmptyFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), nil, 0600))

	ideas, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, ideas)
}

func TestStore_CancelledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, nil), context.Canceled)
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
