// Package watcher reloads the vocabulary file when it changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/quantalogic/lorem-ipsum-generator/internal/config"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/utils"
)

// VocabularyWatcher emits a fresh WordBank each time the watched file is
// written or replaced with valid content.
type VocabularyWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	logger  *zap.Logger
	load    func(path string) (*utils.WordBank, error)
}

// NewVocabularyWatcher creates a watcher for the vocabulary file at path.
func NewVocabularyWatcher(path string, logger *zap.Logger) (*VocabularyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &VocabularyWatcher{
		watcher: w,
		path:    filepath.Clean(path),
		logger:  logger,
		load:    config.LoadVocabulary,
	}, nil
}

// Watch monitors the file's directory, so editors that save by renaming a
// temp file over the original are still seen. The channel closes when ctx
// is done or the watcher is stopped.
func (w *VocabularyWatcher) Watch(ctx context.Context) (<-chan *utils.WordBank, error) {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	updates := make(chan *utils.WordBank, 1)

	go func() {
		defer close(updates)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}

				wb, err := w.load(w.path)
				if err != nil {
					// Keep serving the previous vocabulary
					w.logger.Warn("Ignoring invalid vocabulary file",
						zap.String("path", w.path),
						zap.Error(err))
					continue
				}

				select {
				case updates <- wb:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Error("Vocabulary watcher error", zap.Error(err))
			}
		}
	}()

	return updates, nil
}

// Stop stops the watcher.
func (w *VocabularyWatcher) Stop() error {
	return w.watcher.Close()
}
