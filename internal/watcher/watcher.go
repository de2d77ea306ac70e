// Package watcher reports changes to the contents of the script directory.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"quick-launch/internal/logger"
)

const (
	component       = "Watcher"
	DefaultDebounce = 250 * time.Millisecond
)

// Watcher calls onChange once per burst of filesystem events in the watched
// directory. Only one directory is watched at a time.
type Watcher struct {
	fs       *fsnotify.Watcher
	logger   logger.Logger
	onChange func()
	debounce time.Duration

	mu  sync.Mutex
	dir string

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(log logger.Logger, debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fs:       fsw,
		logger:   log,
		onChange: onChange,
		debounce: debounce,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Watch switches to dir. The previous directory, if any, is dropped even when
// dir cannot be watched.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.fs.Remove(w.dir)
		w.dir = ""
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.dir = dir

	w.logger.Debug(component, "watching directory", map[string]interface{}{
		"dir": dir,
	})
	return nil
}

// Dir returns the directory being watched, or "" when none is.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

func (w *Watcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.forget(event.Name)
			}
			// Chmod counts: chmod +x makes a file launchable.
			if !pending {
				pending = true
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warning(component, "watch error", map[string]interface{}{
				"error": err.Error(),
			})
		case <-timer.C:
			pending = false
			if w.onChange != nil {
				w.onChange()
			}
		case <-w.done:
			timer.Stop()
			return
		}
	}
}

// forget clears dir when the watched directory itself went away. fsnotify
// drops the watch then, so a later Watch of the same path must add it again.
func (w *Watcher) forget(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir == "" || filepath.Clean(name) != filepath.Clean(w.dir) {
		return
	}
	_ = w.fs.Remove(w.dir)
	w.logger.Debug(component, "watched directory removed", map[string]interface{}{
		"dir": w.dir,
	})
	w.dir = ""
}

// Shutdown stops watching. It is safe to call more than once.
func (w *Watcher) Shutdown() {
	w.stopOnce.Do(func() {
		close(w.done)
		if err := w.fs.Close(); err != nil {
			w.logger.Warning(component, "close failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		w.wg.Wait()
	})
}
