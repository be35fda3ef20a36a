package project

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeEvent reports an external modification to a project file.
type ChangeEvent struct {
	Filename string
	Op       fsnotify.Op
}

// Watcher surfaces external edits to a project directory so the embedding
// UI can trigger a graph rebuild. Only YAML files are reported.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan ChangeEvent
	logger  *zap.Logger
}

// NewWatcher starts watching a project directory.
func NewWatcher(dir string, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return &Watcher{
		watcher: fsw,
		events:  make(chan ChangeEvent, 16),
		logger:  logger,
	}, nil
}

// Events is the stream of file changes. Closed when Run returns.
func (w *Watcher) Events() <-chan ChangeEvent { return w.events }

// Run pumps filesystem events until the context is canceled.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name := filepath.Base(ev.Name)
			if !validFilename(name) {
				continue
			}
			select {
			case w.events <- ChangeEvent{Filename: name, Op: ev.Op}:
			default:
				w.logger.Warn("dropping file change event", zap.String("file", name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
