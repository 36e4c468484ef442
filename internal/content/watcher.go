package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before reloading.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a Catalog when files in an on-disk content directory change.
type Watcher struct {
	dir      string
	loader   *Loader
	catalog  *Catalog
	debounce time.Duration

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	timer    *time.Timer
	done     chan struct{}
	reloads  sync.WaitGroup
	onReload func(count int, err error)
}

// NewWatcher creates a Watcher for dir. loader must read the same directory.
func NewWatcher(dir string, loader *Loader, catalog *Catalog) *Watcher {
	return &Watcher{
		dir:      dir,
		loader:   loader,
		catalog:  catalog,
		debounce: DefaultDebounce,
	}
}

// OnReload registers a callback run after every reload attempt.
func (w *Watcher) OnReload(fn func(count int, err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

// Reload loads the directory and swaps it into the catalog. A broken set is
// rejected and the catalog keeps serving the previous one.
func (w *Watcher) Reload() error {
	sections, err := w.loader.LoadAll()
	if err == nil {
		err = w.catalog.Replace(sections)
	}

	w.mu.Lock()
	fn := w.onReload
	w.mu.Unlock()
	if fn != nil {
		fn(len(sections), err)
	}

	if err != nil {
		slog.Error("Content reload rejected, keeping previous sections", "dir", w.dir, "error", err)
		return err
	}
	slog.Info("Reloaded course content", "dir", w.dir, "sections", len(sections))
	return nil
}

// Start begins watching until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		slog.Debug("Content watcher already active")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}

	// fsnotify is not recursive; add every directory.
	err = filepath.Walk(w.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return fmt.Errorf("failed to add directories to watcher: %w", err)
	}

	w.watcher = watcher
	w.done = make(chan struct{})
	go w.loop(ctx, watcher, w.done)

	slog.Debug("Started content watcher", "dir", w.dir)
	return nil
}

// Done returns a channel closed once the watcher has stopped and any reload
// in progress has finished. It is nil before Start.
func (w *Watcher) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

func (w *Watcher) loop(ctx context.Context, watcher *fsnotify.Watcher, done chan struct{}) {
	defer func() {
		w.mu.Lock()
		watcher.Close()
		w.watcher = nil
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		w.reloads.Wait()
		close(done)
		slog.Info("Content watcher stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(watcher, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Content watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				slog.Error("Failed to watch new content directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if !IsSectionFile(event.Name) || event.Op == fsnotify.Chmod {
		return
	}
	slog.Debug("Content file event", "event", event.Op.String(), "path", event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.debouncedReload)
}

// debouncedReload runs when the debounce timer fires. A timer that fires
// after the watcher stopped does nothing.
func (w *Watcher) debouncedReload() {
	w.mu.Lock()
	if w.watcher == nil {
		w.mu.Unlock()
		return
	}
	w.reloads.Add(1)
	w.mu.Unlock()

	defer w.reloads.Done()
	_ = w.Reload()
}
