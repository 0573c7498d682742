package daemon

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jmylchreest/osdui/internal/config"
	"github.com/jmylchreest/osdui/internal/dbus"
	"github.com/jmylchreest/osdui/internal/model"
	"github.com/jmylchreest/osdui/internal/osd"
)

// ErrTimeout is returned when the event loop does not run a request in time.
var ErrTimeout = errors.New("timed out waiting for the event loop")

const defaultSyncTimeout = 5 * time.Second

// Controller is the part of the OSD controller the daemon drives.
type Controller interface {
	ShowAll(req model.ShowRequest)
	Show(index int, req model.ShowRequest)
	ProbeClipFlag()
	Enabled() bool
	Instances() int
	Settings() *config.Settings
}

// ConfigSource is a reloadable settings source.
type ConfigSource interface {
	config.Source
	Reload() error
}

// ThemeLoader loads CSS themes by name.
type ThemeLoader interface {
	LoadTheme(name string) error
	CurrentTheme() string
}

// ShowRecorder remembers the latest shown OSD.
type ShowRecorder interface {
	RecordShow(id string) error
}

// SignalEmitter announces shown OSDs on the bus.
type SignalEmitter interface {
	EmitShown(id string, monitor int) error
}

// Options configures a Daemon. Dispatch must run fn on the event loop that
// owns the controller.
type Options struct {
	Controller Controller
	Config     ConfigSource
	Theme      ThemeLoader
	Notifier   *Notifier
	Shows      ShowRecorder
	Signals    SignalEmitter
	Dispatch   func(fn func())
	Version    string
	Logger     *slog.Logger
	Now        func() time.Time
}

// Daemon serves D-Bus requests against the controller and keeps the theme
// in step with the settings.
type Daemon struct {
	opts   Options
	logger *slog.Logger

	cancelConfig func()
	timeout      time.Duration
}

var _ dbus.Handler = (*Daemon)(nil)

// New creates a daemon.
func New(opts Options) *Daemon {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Dispatch == nil {
		opts.Dispatch = func(fn func()) { fn() }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Daemon{
		opts:    opts,
		logger:  opts.Logger,
		timeout: defaultSyncTimeout,
	}
}

// SetSignals sets the bus signal emitter once the service exists.
func (d *Daemon) SetSignals(s SignalEmitter) {
	d.opts.Signals = s
}

// Start follows settings changes to switch themes.
func (d *Daemon) Start() {
	if d.opts.Config == nil || d.cancelConfig != nil {
		return
	}
	d.cancelConfig = d.opts.Config.Subscribe(func(s *config.Settings) {
		theme := s.Theme
		d.opts.Dispatch(func() { _ = d.applyTheme(theme, false) })
	})
}

// Stop undoes Start.
func (d *Daemon) Stop() {
	if d.cancelConfig != nil {
		d.cancelConfig()
		d.cancelConfig = nil
	}
}

// ConfigError reports a settings file that failed to reload. It is the
// error callback of the settings source.
func (d *Daemon) ConfigError(err error) {
	d.logger.Warn("settings reload failed, keeping previous settings", "error", err)
	if d.opts.Notifier != nil {
		d.opts.Notifier.NotifyConfigError(err)
	}
}

// ClipFlagChanged re-probes the clip flag after another process touched it.
func (d *Daemon) ClipFlagChanged() {
	d.opts.Dispatch(d.opts.Controller.ProbeClipFlag)
}

// ShowSample shows the sample OSD on every monitor.
func (d *Daemon) ShowSample() {
	d.show(osd.SampleRequest(), dbus.AllMonitors)
}

// ShowClock shows the current time on every monitor.
func (d *Daemon) ShowClock() {
	d.show(osd.ClockRequest(d.opts.Now()), dbus.AllMonitors)
}

// ShowLevel shows req on one monitor, or all for dbus.AllMonitors.
func (d *Daemon) ShowLevel(req model.ShowRequest, monitor int) {
	d.show(req, monitor)
}

func (d *Daemon) show(req model.ShowRequest, monitor int) {
	d.opts.Dispatch(func() {
		if monitor == dbus.AllMonitors {
			d.opts.Controller.ShowAll(req)
		} else {
			d.opts.Controller.Show(monitor, req)
		}

		if d.opts.Shows != nil {
			if err := d.opts.Shows.RecordShow(req.ID); err != nil {
				d.logger.Debug("failed to record show", "id", req.ID, "error", err)
			}
		}
		if d.opts.Signals != nil {
			if err := d.opts.Signals.EmitShown(req.ID, monitor); err != nil {
				d.logger.Debug("failed to emit shown signal", "id", req.ID, "error", err)
			}
		}
	})
}

// Reload re-reads the settings file and the theme it names. A settings error
// leaves the previous settings and theme in place; the source reports it
// through its error callback.
func (d *Daemon) Reload() error {
	return d.sync(func() error {
		if d.opts.Config != nil {
			if err := d.opts.Config.Reload(); err != nil {
				return err
			}
		}
		theme := ""
		if d.opts.Config != nil {
			theme = d.opts.Config.Current().Theme
		}
		if err := d.applyTheme(theme, true); err != nil {
			return err
		}
		d.logger.Info("reloaded settings and theme", "theme", theme)
		if d.opts.Notifier != nil {
			d.opts.Notifier.NotifyConfigReloaded()
		}
		return nil
	})
}

// applyTheme loads name when it differs from the current theme, or always
// when force is set.
func (d *Daemon) applyTheme(name string, force bool) error {
	if d.opts.Theme == nil {
		return nil
	}
	if name == "" {
		name = "default"
	}
	if !force && name == d.opts.Theme.CurrentTheme() {
		return nil
	}
	if err := d.opts.Theme.LoadTheme(name); err != nil {
		d.logger.Warn("failed to load theme", "theme", name, "error", err)
		if d.opts.Notifier != nil {
			d.opts.Notifier.NotifyThemeError(err)
		}
		return err
	}
	return nil
}

// Status reports the controller state.
func (d *Daemon) Status() dbus.Status {
	result := make(chan dbus.Status, 1)
	d.opts.Dispatch(func() {
		st := dbus.Status{Version: d.opts.Version}
		c := d.opts.Controller
		st.Enabled = c.Enabled()
		st.Monitors = c.Instances()
		if s := c.Settings(); s != nil {
			st.Effect = string(s.BgEffect)
		}
		if d.opts.Theme != nil {
			st.Theme = d.opts.Theme.CurrentTheme()
		}
		result <- st
	})

	select {
	case st := <-result:
		return st
	case <-time.After(d.timeout):
		d.logger.Warn("status unavailable", "error", ErrTimeout)
		return dbus.Status{Version: d.opts.Version}
	}
}

// sync runs fn on the event loop and waits for its result.
func (d *Daemon) sync(fn func() error) error {
	done := make(chan error, 1)
	d.opts.Dispatch(func() { done <- fn() })

	select {
	case err := <-done:
		return err
	case <-time.After(d.timeout):
		return ErrTimeout
	}
}
