// SPDX-License-Identifier: Unlicense OR MIT

package asset

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"glint.dev/internal/log"
)

// Watcher reports writes to a set of files. Events are gathered on a
// background goroutine and handed out by Poll, so that the render
// thread never blocks on the file system.
type Watcher struct {
	w     *fsnotify.Watcher
	files map[string]bool
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
	err   error

	mu      sync.Mutex
	pending []string
	queued  map[string]bool
}

// NewWatcher watches paths. The parent directories are watched, so
// files replaced by editors keep being reported.
func NewWatcher(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("asset: %w", err)
	}
	w := &Watcher{
		w:       fw,
		files:  make(map[string]bool),
		done:   make(chan struct{}),
		queued: make(map[string]bool),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("asset: %w", err)
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("asset: watch %s: %w", dir, err)
		}
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if !w.files[name] {
				continue
			}
			w.mu.Lock()
			if !w.queued[name] {
				w.queued[name] = true
				w.pending = append(w.pending, name)
			}
			w.mu.Unlock()
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			log.Logger().Warn("file watcher", "err", err)
		}
	}
}

// Poll returns the absolute paths changed since the last Poll, without
// duplicates, in the order first seen.
func (w *Watcher) Poll() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.pending
	w.pending = nil
	clear(w.queued)
	return out
}

// Close stops the watcher. Further calls return the first result.
func (w *Watcher) Close() error {
	w.once.Do(func() {
		close(w.done)
		w.err = w.w.Close()
		w.wg.Wait()
	})
	return w.err
}
