package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Source supplies settings snapshots and change notifications.
type Source interface {
	// Current returns the latest snapshot. Callers must not modify it.
	Current() *Settings
	// Subscribe registers fn for future snapshots and returns a cancel func.
	Subscribe(fn func(*Settings)) (cancel func())
}

// subscribers is a set of change callbacks shared by the Source implementations.
type subscribers struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(*Settings)
}

func (s *subscribers) add(fn func(*Settings)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func(*Settings))
	}
	id := s.nextID
	s.nextID++
	s.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.fns, id)
			s.mu.Unlock()
		})
	}
}

func (s *subscribers) notify(settings *Settings) {
	s.mu.Lock()
	fns := make([]func(*Settings), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(settings)
	}
}

func (s *subscribers) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

// StaticSource is an in-memory Source. Update notifies synchronously.
type StaticSource struct {
	mu      sync.RWMutex
	current *Settings
	subs    subscribers
}

// NewStaticSource creates a source holding settings (defaults if nil).
func NewStaticSource(settings *Settings) *StaticSource {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &StaticSource{current: settings}
}

// Current returns the latest snapshot.
func (s *StaticSource) Current() *Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn for future snapshots.
func (s *StaticSource) Subscribe(fn func(*Settings)) func() {
	return s.subs.add(fn)
}

// Subscribers returns the number of live subscriptions.
func (s *StaticSource) Subscribers() int {
	return s.subs.count()
}

// Update sanitizes and stores a new snapshot, then notifies subscribers.
func (s *StaticSource) Update(settings *Settings) {
	settings = settings.Clone()
	settings.Sanitize()

	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()

	s.subs.notify(settings)
}

// FileSource is a Source backed by a TOML file watched with fsnotify.
// Subscribers are called from the watcher goroutine.
type FileSource struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	path    string
	current *Settings
	subs    subscribers
	onError func(error)

	watcher *fsnotify.Watcher
	done    chan struct{}
	running bool
}

// NewFileSource loads path (default path if empty) and returns a source for it.
// When the file fails to load the source still starts, from the defaults,
// and the load error is returned alongside it.
func NewFileSource(path string, logger *slog.Logger) (*FileSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = ConfigPath()
	}

	settings, err := Load(path)
	if err != nil {
		settings = DefaultSettings()
	}

	return &FileSource{
		logger:  logger,
		path:    path,
		current: settings,
		done:    make(chan struct{}),
	}, err
}

// Path returns the watched file path.
func (s *FileSource) Path() string {
	return s.path
}

// Current returns the latest valid snapshot.
func (s *FileSource) Current() *Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn for future snapshots.
func (s *FileSource) Subscribe(fn func(*Settings)) func() {
	return s.subs.add(fn)
}

// SetErrorCallback sets the callback invoked when a changed file fails to load.
func (s *FileSource) SetErrorCallback(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = fn
}

// Start begins watching the file for changes.
func (s *FileSource) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory containing the file (more reliable for editors that
	// replace the file on save)
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		s.mu.Unlock()
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})
	s.running = true
	s.mu.Unlock()

	go s.watch(watcher, s.done)

	s.logger.Debug("config watcher started", "path", s.path)
	return nil
}

// Stop stops watching the file.
func (s *FileSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	close(s.done)
	s.logger.Debug("config watcher stopped")
	return s.watcher.Close()
}

// Reload re-reads the file. On failure the previous snapshot is kept.
func (s *FileSource) Reload() error {
	settings, err := Load(s.path)

	s.mu.Lock()
	onError := s.onError
	if err == nil {
		s.current = settings
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("config file changed but validation failed", "path", s.path, "error", err)
		if onError != nil {
			onError(err)
		}
		return err
	}

	s.logger.Info("config reloaded", "path", s.path)
	s.subs.notify(settings)
	return nil
}

func (s *FileSource) watch(watcher *fsnotify.Watcher, done chan struct{}) {
	filename := filepath.Base(s.path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Only care about our file
			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				s.logger.Debug("config file changed", "path", s.path, "op", event.Op.String())
				_ = s.Reload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("config watcher error", "error", err)

		case <-done:
			return
		}
	}
}
