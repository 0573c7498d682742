package display

import (
	"log/slog"
	"sync"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"

	"github.com/jmylchreest/osdui/internal/model"
)

// Monitors reads the monitor layout from a GDK display and reports changes.
type Monitors struct {
	display *gdk.Display
	logger  *slog.Logger

	mu      sync.Mutex
	native  map[int]*gdk.Monitor
	subs    map[int]func()
	nextSub int
	handle  glib.SignalHandle
	watched bool
}

// NewMonitors creates a layout reader for display, or the default display if nil.
func NewMonitors(display *gdk.Display, logger *slog.Logger) (*Monitors, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		return nil, &DisplayError{Message: "no display available"}
	}
	return &Monitors{
		display: display,
		logger:  logger,
		native:  make(map[int]*gdk.Monitor),
		subs:    make(map[int]func()),
	}, nil
}

// Monitors enumerates the current monitors. Indexes follow the GDK list order.
func (m *Monitors) Monitors() []model.Monitor {
	list := m.display.Monitors()
	if list == nil {
		m.logger.Warn("no monitors list available")
		return nil
	}

	n := list.NItems()
	monitors := make([]model.Monitor, 0, n)
	native := make(map[int]*gdk.Monitor, n)
	for i := uint(0); i < n; i++ {
		mon := wrapMonitor(list.Item(i))
		if mon == nil {
			continue
		}
		geom := mon.Geometry()
		idx := int(i)
		native[idx] = mon
		monitors = append(monitors, model.Monitor{
			Index:     idx,
			Width:     geom.Width(),
			Height:    geom.Height(),
			Connector: mon.Connector(),
		})
	}
	model.MarkPrimary(monitors)

	m.mu.Lock()
	m.native = native
	m.mu.Unlock()
	return monitors
}

// Native returns the GDK monitor for an index of the last enumeration.
func (m *Monitors) Native(index int) *gdk.Monitor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.native[index]
}

// Subscribe calls fn after every change of the monitor list.
func (m *Monitors) Subscribe(fn func()) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	if !m.watched {
		m.watch()
	}
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			if len(m.subs) == 0 && m.watched {
				m.display.Monitors().HandlerDisconnect(m.handle)
				m.watched = false
			}
			m.mu.Unlock()
		})
	}
}

func (m *Monitors) watch() {
	m.handle = m.display.Monitors().ConnectItemsChanged(func(position, removed, added uint) {
		m.logger.Info("monitor configuration changed",
			"position", position,
			"removed", removed,
			"added", added,
		)
		m.mu.Lock()
		subs := make([]func(), 0, len(m.subs))
		for _, fn := range m.subs {
			subs = append(subs, fn)
		}
		m.mu.Unlock()
		for _, fn := range subs {
			fn()
		}
	})
	m.watched = true
}

// wrapMonitor wraps a glib.Object as a gdk.Monitor.
// gotk4 does not export its own wrapper for list model items.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	// gdk.Monitor is a struct embedding *glib.Object, so the layouts match.
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	mon := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(mon))
}
