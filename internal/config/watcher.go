package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher pushes a signal on Events whenever the resolved config file
// changes on disk. It is a convenience push signal only: per §4.E the
// coordinator's mtime stat-on-each-operation remains the source of truth,
// so a missed or duplicate fsnotify event never causes incorrect reload
// behavior, only a delayed or redundant one.
type Watcher struct {
	fsw    *fsnotify.Watcher
	Events chan struct{}
}

// NewWatcher starts watching path for changes. Callers with a non-file
// config origin should not call this at all.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch config file %s: %w", path, err)
	}

	w := &Watcher{fsw: fsw, Events: make(chan struct{}, 1)}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				select {
				case w.Events <- struct{}{}:
				default:
				}
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
