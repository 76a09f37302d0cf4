package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DocumentWatcher = (*Watcher)(nil)

// Watcher streams change events for individual files.
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a new file and renaming it over the old one are seen
// as a delete followed by a create.
type Watcher struct {
	mu       sync.Mutex
	closed   bool
	watchers map[*fsnotify.Watcher]struct{}
}

// NewWatcher creates a Watcher.
func NewWatcher() *Watcher {
	return &Watcher{watchers: make(map[*fsnotify.Watcher]struct{})}
}

// Watch emits events for uri until ctx is cancelled or the Watcher is closed.
// The returned channel is closed when watching stops.
func (w *Watcher) Watch(ctx context.Context, uri string) (<-chan driven.ChangeEvent, error) {
	target, err := filepath.Abs(ResolvePath(uri))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", uri, err)
	}
	dir := filepath.Dir(target)
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", dir)
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, errors.New("watcher is closed")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		w.mu.Unlock()
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	w.watchers[fw] = struct{}{}
	w.mu.Unlock()

	changes := make(chan driven.ChangeEvent)
	go w.run(ctx, fw, uri, target, changes)
	return changes, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, uri, target string, changes chan<- driven.ChangeEvent) {
	defer func() {
		w.mu.Lock()
		delete(w.watchers, fw)
		w.mu.Unlock()
		fw.Close()
		close(changes)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			change := handleFsEvent(target, event)
			if change == nil {
				continue
			}
			change.URI = uri
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", uri, err)
		}
	}
}

// handleFsEvent maps a directory event to a change of target, or nil when
// the event concerns another file or an operation that does not change content.
func handleFsEvent(target string, event fsnotify.Event) *driven.ChangeEvent {
	if filepath.Clean(event.Name) != target {
		return nil
	}

	switch {
	case event.Has(fsnotify.Create):
		return &driven.ChangeEvent{Type: driven.ChangeCreated, URI: target}
	case event.Has(fsnotify.Write):
		return &driven.ChangeEvent{Type: driven.ChangeUpdated, URI: target}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &driven.ChangeEvent{Type: driven.ChangeDeleted, URI: target}
	default:
		return nil
	}
}

// Close stops every active watch. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for fw := range w.watchers {
		if err := fw.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
