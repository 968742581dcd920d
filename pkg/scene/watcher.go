package scene

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Watcher reloads a scene file whenever it changes on disk
type Watcher struct {
	path    string
	logger  core.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching the directory holding path. Editors often
// replace files instead of writing them, so the directory is watched and
// events are filtered by name.
func NewWatcher(path string, logger core.Logger) (*Watcher, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, logger: logger, watcher: fw}, nil
}

// Run blocks until ctx is done, calling onChange with each successfully
// reloaded scene. Files that fail to parse are logged and skipped.
func (w *Watcher) Run(ctx context.Context, onChange func(*Scene)) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			s, err := LoadFile(w.path)
			if err != nil {
				w.logger.Warnf("reload %s: %v", w.path, err)
				continue
			}
			w.logger.Infof("reloaded scene %s", s.Name)
			onChange(s)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warnf("watcher overflow: %v", err)
				continue
			}
			return err
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
