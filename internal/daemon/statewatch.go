package daemon

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jmylchreest/osdui/internal/store"
)

// StateWatcher watches the shared state file for clip flag changes made by
// other processes.
type StateWatcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	// Path to watch
	statePath string

	// Last known modification time and clip owner
	lastModTime time.Time
	lastClip    clipState

	// Polling interval
	pollInterval time.Duration

	// Callback for changes
	onChangeCallback func()

	// Control channels
	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

type clipState struct {
	disabled bool
	by       string
}

// NewStateWatcher creates a new StateWatcher for the given state file path.
func NewStateWatcher(statePath string, logger *slog.Logger) *StateWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateWatcher{
		logger:       logger,
		statePath:    statePath,
		pollInterval: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// SetPollInterval sets the polling interval for file changes.
func (w *StateWatcher) SetPollInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pollInterval = interval
}

// SetChangeCallback sets the callback invoked when the clip flag changes.
// It runs on the watcher goroutine.
func (w *StateWatcher) SetChangeCallback(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching the state file for changes.
func (w *StateWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true

	if info, err := os.Stat(w.statePath); err == nil {
		w.lastModTime = info.ModTime()
	}
	w.lastClip = w.readClip()

	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.watchLoop(ctx)

	w.logger.Debug("state watcher started", "path", w.statePath, "interval", w.pollInterval)
	return nil
}

// Stop stops watching the state file.
func (w *StateWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	// Wait for goroutine to finish
	<-w.doneCh
	w.logger.Debug("state watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *StateWatcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// watchLoop is the main polling loop.
func (w *StateWatcher) watchLoop(ctx context.Context) {
	defer close(w.doneCh)

	w.mu.RLock()
	interval := w.pollInterval
	w.mu.RUnlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.checkForChanges()
		}
	}
}

// checkForChanges fires the callback when the file was modified and the clip
// flag or its owner differs from the last seen value. Other writes (ring box,
// last show) are ignored.
func (w *StateWatcher) checkForChanges() {
	w.mu.RLock()
	callback := w.onChangeCallback
	lastModTime := w.lastModTime
	lastClip := w.lastClip
	w.mu.RUnlock()

	info, err := os.Stat(w.statePath)
	if err != nil {
		// File might not exist yet or was deleted
		if !os.IsNotExist(err) {
			w.logger.Debug("failed to stat state file", "path", w.statePath, "error", err)
		}
		return
	}

	modTime := info.ModTime()
	if !modTime.After(lastModTime) {
		return
	}
	clip := w.readClip()

	w.mu.Lock()
	w.lastModTime = modTime
	w.lastClip = clip
	w.mu.Unlock()

	if clip == lastClip {
		return
	}
	w.logger.Debug("clip flag changed",
		"path", w.statePath,
		"disabled", clip.disabled,
		"by", clip.by,
	)
	if callback != nil {
		callback()
	}
}

func (w *StateWatcher) readClip() clipState {
	state, err := store.LoadSharedState(w.statePath)
	if err != nil {
		return clipState{}
	}
	return clipState{disabled: state.ClipDisabled, by: state.ClipDisabledBy}
}
