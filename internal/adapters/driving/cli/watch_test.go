package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
)

func TestWatch(t *testing.T) {
	t.Run("ingests on start and on each write", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.ideas.report = driving.IngestReport{Parsed: 4}
		ts.watcher.events = []driven.ChangeEvent{
			{Type: driven.ChangeUpdated},
			{Type: driven.ChangeDeleted},
			{Type: driven.ChangeCreated},
		}

		out, _, err := runCommand(t, "watch", "notes.md")

		require.NoError(t, err)
		assert.Len(t, ts.ideas.ingested, 3)
		assert.Equal(t, 3, ts.ideas.saves)
		assert.Equal(t, 1, ts.ideas.loads)
		assert.Contains(t, out, "notes.md: 4 parsed, 0 new, 0 duplicates, 0 reconciled")
		assert.Contains(t, out, "watching notes.md")
	})

	t.Run("watch error", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.watcher.err = errors.New("root path error")

		_, _, err := runCommand(t, "watch", "notes.md")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "watching notes.md")
		assert.Empty(t, ts.ideas.ingested)
	})

	t.Run("without watcher", func(t *testing.T) {
		setupTestServices(t)
		documentWatcher = nil

		_, _, err := runCommand(t, "watch", "notes.md")

		assert.EqualError(t, err, "document watcher not configured")
	})
}
