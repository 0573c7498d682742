package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// EmitShown emits the Shown signal after an OSD was shown on a monitor.
func (s *Service) EmitShown(id string, monitor int) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(ServicePath, ServiceInterface+".Shown", id, int32(monitor))
	if err != nil {
		return fmt.Errorf("failed to emit Shown signal: %w", err)
	}

	s.logger.Debug("emitted Shown signal", "id", id, "monitor", monitor)
	return nil
}

// EmitReloaded emits the Reloaded signal after a successful reload.
func (s *Service) EmitReloaded() error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	if err := s.conn.Emit(ServicePath, ServiceInterface+".Reloaded"); err != nil {
		return fmt.Errorf("failed to emit Reloaded signal: %w", err)
	}

	s.logger.Debug("emitted Reloaded signal")
	return nil
}

// Connection returns the underlying D-Bus connection.
func (s *Service) Connection() *dbus.Conn {
	return s.conn
}
