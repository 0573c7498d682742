package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/osdui/internal/model"
	"github.com/jmylchreest/osdui/internal/osd"
)

// Manager owns the OSD windows, one per attached monitor.
type Manager struct {
	app      *gtk.Application
	logger   *slog.Logger
	display  *gdk.Display
	monitors *Monitors

	windows map[int]*Window
}

var _ osd.PresenterFactory = (*Manager)(nil)

// NewManager creates a new display manager.
func NewManager(app *gtk.Application, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		app:     app,
		logger:  logger,
		windows: make(map[int]*Window),
	}
}

// Start connects to the default display.
func (m *Manager) Start() error {
	m.display = gdk.DisplayGetDefault()
	if m.display == nil {
		return &DisplayError{Message: "no display available"}
	}

	monitors, err := NewMonitors(m.display, m.logger)
	if err != nil {
		return err
	}
	m.monitors = monitors

	m.logger.Info("display manager started")
	return nil
}

// Monitors returns the monitor layout of the display. Valid after Start.
func (m *Manager) Monitors() *Monitors {
	return m.monitors
}

// Display returns the GDK display. Valid after Start.
func (m *Manager) Display() *gdk.Display {
	return m.display
}

// Attach creates the window for a monitor, replacing any previous one.
func (m *Manager) Attach(mon model.Monitor) osd.Presenter {
	if old, ok := m.windows[mon.Index]; ok {
		old.Close()
	}

	var native *gdk.Monitor
	if m.monitors != nil {
		native = m.monitors.Native(mon.Index)
	}
	w := NewWindow(m.app, m.display, mon, native, m.logger)
	m.windows[mon.Index] = w

	m.logger.Debug("osd window created",
		"monitor", mon.Index,
		"connector", mon.Connector,
		"width", mon.Width,
		"height", mon.Height,
	)
	return w
}

// Detach destroys the window of a monitor.
func (m *Manager) Detach(index int) {
	w, ok := m.windows[index]
	if !ok {
		return
	}
	delete(m.windows, index)
	w.Close()
	m.logger.Debug("osd window destroyed", "monitor", index)
}

// Count returns the number of live windows.
func (m *Manager) Count() int {
	return len(m.windows)
}

// Stop destroys every window.
func (m *Manager) Stop() {
	for idx := range m.windows {
		m.Detach(idx)
	}
	m.logger.Info("display manager stopped")
}

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
