package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a burst of writes must settle before the
// watched file is re-read.
const DefaultDebounce = 150 * time.Millisecond

// Watcher re-reads a plan file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself, because most
// editors save by writing a temporary file and renaming it over the original.
// Events are debounced and handled on a single goroutine: onLoad receives each
// successfully parsed plan, onError every read, parse or watcher error.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onLoad   func(*domain.Plan)
	onError  func(error)

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher for path. Call Start to begin watching.
func NewWatcher(path string, onLoad func(*domain.Plan), onError func(error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: DefaultDebounce,
		onLoad:   onLoad,
		onError:  onError,
		done:     make(chan struct{}),
	}, nil
}

// SetDebounce overrides the debounce window. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins watching. The watcher stops when ctx is cancelled or Stop is
// called. If Start fails the watcher is already stopped.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.Stop()
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop ends watching and waits for the event goroutine to exit. Safe to call
// more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
	w.wg.Wait()
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(fmt.Errorf("watching %s: %w", w.path, err))
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	// A save that renames a temp file over the path arrives as Create. Rename
	// and Remove mean the file has gone away.
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) reload() {
	p, err := LoadFile(w.path)
	if err != nil {
		w.onError(err)
		return
	}
	w.onLoad(p)
}
