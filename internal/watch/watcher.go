// Package watch marks the corpus dirty when files under the configured
// roots change, so the daemon's scheduled ingestion can skip ticks where
// nothing moved.
package watch

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/draftsmith-ai/draftsmith/internal/config"
)

// Flag is a consumable dirty marker. Repeated events between consumptions
// collapse into one, which is the only debouncing the scheduler needs.
type Flag struct {
	mu    sync.Mutex
	dirty bool
}

// Set marks the corpus dirty
func (f *Flag) Set() {
	f.mu.Lock()
	f.dirty = true
	f.mu.Unlock()
}

// Consume reports whether the corpus was dirty and resets the flag
func (f *Flag) Consume() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	was := f.dirty
	f.dirty = false
	return was
}

// Watcher follows the corpus roots with fsnotify and sets a dirty flag on
// every relevant change. Directories are watched recursively; directories
// created after startup are added on the fly.
type Watcher struct {
	watcher *fsnotify.Watcher
	flag    *Flag
	doneCh  chan struct{}
}

// New creates a Watcher over the declared corpus roots. Roots that cannot
// be watched are skipped with a warning, matching scanner behavior.
func New(roots []config.Root) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsWatcher,
		flag:    &Flag{},
		doneCh:  make(chan struct{}),
	}

	for _, root := range roots {
		if err := w.addRecursive(root.Path); err != nil {
			log.Printf("watch: skipping root %s: %v", root.Path, err)
		}
	}

	return w, nil
}

// Flag returns the dirty flag shared with the scheduler
func (w *Watcher) Flag() *Flag {
	return w.flag
}

// Start consumes filesystem events until the context is cancelled or the
// watcher is closed
func (w *Watcher) Start(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

// Close shuts the watcher down and waits for the event loop to drain
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.doneCh
	return err
}

// handle marks the corpus dirty for content events and extends the watch
// into newly created directories. Chmod-only events and hidden files are
// ignored, mirroring what the scanner would discover.
func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		// A rename into the tree or a new subdirectory both land here.
		if err := w.addRecursive(event.Name); err == nil {
			w.flag.Set()
			return
		}
	}

	w.flag.Set()
}

// addRecursive watches path and every subdirectory below it. Passing a file
// path is not an error; files are covered by their parent's watch.
func (w *Watcher) addRecursive(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != abs && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return w.watcher.Add(p)
	})
}
