package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader keeps one display-wide CSS provider loaded with the selected theme.
// The provider sits at application priority, beneath the per-window OSD
// styles, and follows edits of a user theme while hot reload is on.
type Loader struct {
	logger   *slog.Logger
	dir      string
	provider *gtk.CSSProvider

	mu       sync.RWMutex
	theme    *Theme
	watcher  *Watcher
	watchCtx context.Context
}

// NewLoader creates a loader for the user's themes directory.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := ThemesDir()
	if err != nil {
		logger.Warn("no user themes directory", "error", err)
	}
	return &Loader{
		logger:   logger,
		dir:      dir,
		provider: gtk.NewCSSProvider(),
	}
}

// LoadTheme resolves name and loads it into the provider. Something is always
// loaded; a non-nil error means it is a fallback.
func (l *Loader) LoadTheme(name string) error {
	t, origin, err := Resolve(l.dir, name)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.theme = t
	l.provider.LoadFromString(t.CSS)
	l.logger.Info("theme loaded", "name", t.Name, "origin", origin, "path", t.Path)
	l.rewatchLocked()
	return err
}

// Apply installs the provider on display. Call once, after the display is
// open.
func (l *Loader) Apply(display *gdk.Display) {
	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
}

// CurrentTheme returns the name of the loaded theme.
func (l *Loader) CurrentTheme() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.theme == nil {
		return ""
	}
	return l.theme.Name
}

// StartHotReload watches the loaded theme, and any theme loaded later, until
// ctx ends or StopHotReload is called. Reloads land on the GTK main loop.
func (l *Loader) StartHotReload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.watchCtx = ctx
	l.rewatchLocked()
}

// StopHotReload stops following theme edits.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.watchCtx = nil
	l.stopWatcherLocked()
}

func (l *Loader) stopWatcherLocked() {
	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
}

// rewatchLocked points the watcher at the current theme. Bundled themes have
// nothing on disk to watch.
func (l *Loader) rewatchLocked() {
	l.stopWatcherLocked()
	if l.watchCtx == nil || l.theme == nil || l.theme.Path == "" {
		return
	}

	name := l.theme.Name
	w := NewWatcher(l.theme, l.logger)
	w.SetChangeCallback(func(css string) {
		glib.IdleAdd(func() {
			l.provider.LoadFromString(css)
			l.logger.Info("theme reloaded", "name", name)
		})
	})
	if err := w.Start(l.watchCtx); err != nil {
		l.logger.Warn("failed to watch theme", "name", name, "error", err)
		return
	}
	l.watcher = w
}
