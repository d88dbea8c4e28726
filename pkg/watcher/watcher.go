package watcher

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a single file and invokes a callback after its
// contents settle. The parent directory is watched rather than the file
// itself so atomic-save editors (write temp, rename over) keep working.
type FileWatcher struct {
	path      string
	fsw       *fsnotify.Watcher
	coalescer *Coalescer
	done      chan struct{}
}

// Watch starts watching path and calls onChange (on a background
// goroutine) after each settled burst of writes. Callers stop it with
// Close.
func Watch(path string, onChange func()) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &FileWatcher{
		path:      abs,
		fsw:       fsw,
		coalescer: NewCoalescer(0),
		done:      make(chan struct{}),
	}
	go w.loop(onChange)
	return w, nil
}

func (w *FileWatcher) loop(onChange func()) {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.matches(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.coalescer.Trigger(onChange)
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; live reload just degrades.
		case <-w.done:
			return
		}
	}
}

func (w *FileWatcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.path
}

// Close stops the watcher and cancels any pending callback.
func (w *FileWatcher) Close() error {
	close(w.done)
	w.coalescer.Stop()
	return w.fsw.Close()
}
