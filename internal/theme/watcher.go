package theme

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a theme file and its imports and triggers hot-reload.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	// Theme being watched
	theme *Theme

	// Editors often write a file in several steps; events within this window
	// collapse into one reload.
	debounce time.Duration

	// Callback for changes
	onChangeCallback func(css string)

	watcher *fsnotify.Watcher
	dirs    map[string]bool
	pending *time.Timer

	// Control channels
	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewWatcher creates a new theme watcher.
func NewWatcher(theme *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		logger:   logger,
		theme:    theme,
		debounce: 100 * time.Millisecond,
		dirs:     make(map[string]bool),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// SetDebounce sets how long to wait for more events before reloading.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// SetChangeCallback sets the callback to invoke when the theme changes.
// The callback receives the new CSS content on the watcher goroutine.
func (w *Watcher) SetChangeCallback(callback func(css string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching the theme files for changes.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	// Bundled themes cannot change
	if w.theme == nil || w.theme.Path == "" {
		w.mu.Unlock()
		w.logger.Debug("not watching bundled theme")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return fmt.Errorf("failed to create theme watcher: %w", err)
	}
	w.watcher = watcher
	w.dirs = make(map[string]bool)
	if err := w.watchDirsLocked(); err != nil {
		_ = watcher.Close()
		w.mu.Unlock()
		return err
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.watchLoop(ctx, watcher)

	w.logger.Debug("theme watcher started", "path", w.theme.Path)
	return nil
}

// watchDirsLocked adds the directories of every theme file. Directories are
// watched rather than files so editors that replace on save are seen.
func (w *Watcher) watchDirsLocked() error {
	if w.watcher == nil {
		return nil
	}
	for _, file := range w.theme.Files() {
		dir := filepath.Dir(file)
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch theme directory: %w", err)
		}
		w.dirs[dir] = true
	}
	return nil
}

// Stop stops watching the theme.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	// Wait for goroutine to finish
	<-w.doneCh
	_ = w.watcher.Close()
	w.logger.Debug("theme watcher stopped")
}

// UpdateTheme switches to watching a different theme.
func (w *Watcher) UpdateTheme(theme *Theme) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.theme = theme
	if w.running && theme != nil {
		if err := w.watchDirsLocked(); err != nil {
			w.logger.Warn("failed to watch new theme", "error", err)
		}
	}
}

// watchLoop dispatches file events until stopped.
func (w *Watcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !w.isThemeFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)
		}
	}
}

func (w *Watcher) isThemeFile(name string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.theme == nil {
		return false
	}
	name = filepath.Clean(name)
	for _, file := range w.theme.Files() {
		if filepath.Clean(file) == name {
			return true
		}
	}
	return false
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.checkForChanges)
}

// checkForChanges reloads the theme and reports new CSS.
func (w *Watcher) checkForChanges() {
	w.mu.Lock()
	theme := w.theme
	if !w.running || theme == nil || theme.Path == "" {
		w.mu.Unlock()
		return
	}

	changed, err := theme.Reload()
	if err == nil && changed {
		if werr := w.watchDirsLocked(); werr != nil {
			w.logger.Warn("failed to watch theme imports", "error", werr)
		}
	}
	callback := w.onChangeCallback
	css := theme.CSS
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("failed to reload theme", "path", theme.Path, "error", err)
		return
	}
	if !changed {
		return
	}

	w.logger.Info("theme file changed, reloading", "path", theme.Path)
	if callback != nil {
		callback(css)
	}
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}
