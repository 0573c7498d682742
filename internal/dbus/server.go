package dbus

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

// Service implements the io.github.jmylchreest.Osdui1 D-Bus interface.
type Service struct {
	conn    *dbus.Conn
	logger  *slog.Logger
	handler Handler

	mu      sync.RWMutex
	running bool
}

// NewService creates a service dispatching to handler.
func NewService(handler Handler, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:  logger,
		handler: handler,
	}
}

// Start connects to the session bus and exports the service.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("service already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, ServicePath, ServiceInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: ServicePath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    ServiceInterface,
				Methods: serviceMethods(),
				Signals: serviceSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), ServicePath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(ServiceBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", ServiceBusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus service started", "interface", ServiceInterface, "path", ServicePath)
	return nil
}

// Stop releases the bus name.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(ServiceBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus service stopped")
	return nil
}

// ShowSample shows the sample OSD on every monitor.
// D-Bus method: ShowSample()
func (s *Service) ShowSample() *dbus.Error {
	s.logger.Debug("ShowSample called")
	s.handler.ShowSample()
	return nil
}

// ShowClock shows the clock OSD on every monitor.
// D-Bus method: ShowClock()
func (s *Service) ShowClock() *dbus.Error {
	s.logger.Debug("ShowClock called")
	s.handler.ShowClock()
	return nil
}

// ShowLevel shows an OSD with an icon, optional label and optional level.
// A negative level omits the level; monitor -1 targets every monitor.
// D-Bus method: ShowLevel(ssdi) -> s
func (s *Service) ShowLevel(icon, label string, level float64, monitor int32) (string, *dbus.Error) {
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return "", dbus.MakeFailedError(fmt.Errorf("level must be finite"))
	}
	req := LevelRequest(icon, label, level)

	s.logger.Debug("ShowLevel called",
		"icon", icon,
		"label", label,
		"level", level,
		"monitor", monitor,
		"id", req.ID,
	)
	s.handler.ShowLevel(req, int(monitor))
	return req.ID, nil
}

// Reload re-reads the settings file and theme.
// D-Bus method: Reload()
func (s *Service) Reload() *dbus.Error {
	s.logger.Debug("Reload called")
	if err := s.handler.Reload(); err != nil {
		return dbus.MakeFailedError(err)
	}
	if err := s.EmitReloaded(); err != nil {
		s.logger.Warn("failed to emit Reloaded signal", "error", err)
	}
	return nil
}

// GetStatus returns the daemon state.
// D-Bus method: GetStatus() -> (sbiss)
func (s *Service) GetStatus() (string, bool, int32, string, string, *dbus.Error) {
	s.logger.Debug("GetStatus called")
	st := s.handler.Status()
	return st.Version, st.Enabled, int32(st.Monitors), st.Effect, st.Theme, nil
}

// serviceMethods returns the D-Bus method introspection data.
func serviceMethods() []introspect.Method {
	return []introspect.Method{
		{Name: "ShowSample"},
		{Name: "ShowClock"},
		{
			Name: "ShowLevel",
			Args: []introspect.Arg{
				{Name: "icon", Type: "s", Direction: "in"},
				{Name: "label", Type: "s", Direction: "in"},
				{Name: "level", Type: "d", Direction: "in"},
				{Name: "monitor", Type: "i", Direction: "in"},
				{Name: "id", Type: "s", Direction: "out"},
			},
		},
		{Name: "Reload"},
		{
			Name: "GetStatus",
			Args: []introspect.Arg{
				{Name: "version", Type: "s", Direction: "out"},
				{Name: "enabled", Type: "b", Direction: "out"},
				{Name: "monitors", Type: "i", Direction: "out"},
				{Name: "effect", Type: "s", Direction: "out"},
				{Name: "theme", Type: "s", Direction: "out"},
			},
		},
	}
}

// serviceSignals returns the D-Bus signal introspection data.
func serviceSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "Shown",
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "monitor", Type: "i"},
			},
		},
		{Name: "Reloaded"},
	}
}
