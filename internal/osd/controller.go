package osd

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/osdui/internal/config"
	"github.com/jmylchreest/osdui/internal/model"
	"github.com/jmylchreest/osdui/internal/ring"
	"github.com/jmylchreest/osdui/internal/style"
)

// DefaultProbeDelay is how long after Enable the clip flag is probed for an
// external owner.
const DefaultProbeDelay = 2 * time.Second

// Options configures a Controller.
type Options struct {
	Source     config.Source
	Monitors   Monitors
	Presenters PresenterFactory
	Scheduler  Scheduler

	// Optional collaborators.
	ClipFlag ClipFlag
	Ring     RingSink
	Boxes    BoxStore

	// Dispatch moves settings notifications onto the event loop.
	// Nil runs them in place.
	Dispatch func(func())

	// PreviewOnChange shows a sample OSD after every settings change.
	PreviewOnChange bool

	ProbeDelay time.Duration
	Logger     *slog.Logger
}

// Controller owns the OSD instances of every monitor.
type Controller struct {
	opts     Options
	logger   *slog.Logger
	registry *Registry

	enabled  bool
	settings *config.Settings

	cancelSettings func()
	cancelMonitors func()
	probeTimer     Timer

	clipExternal bool

	savedBox  ring.Box
	lastRing  string
	ringReady bool
}

// New creates a disabled controller.
func New(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ProbeDelay <= 0 {
		opts.ProbeDelay = DefaultProbeDelay
	}
	if opts.Dispatch == nil {
		opts.Dispatch = func(fn func()) { fn() }
	}
	return &Controller{
		opts:     opts,
		logger:   opts.Logger,
		registry: NewRegistry(),
	}
}

// Registry returns the instance registry.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Enabled reports whether the controller is active.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Instances returns the number of attached monitors.
func (c *Controller) Instances() int {
	return c.registry.Len()
}

// Settings returns the snapshot applied by the last recompute.
func (c *Controller) Settings() *config.Settings {
	return c.settings
}

// Enable subscribes to settings and monitor changes, applies the current
// style to every monitor and schedules the clip-flag probe.
func (c *Controller) Enable() {
	if c.enabled {
		return
	}
	c.enabled = true

	if c.opts.Boxes != nil {
		c.savedBox = c.opts.Boxes.RingBox()
	}

	c.cancelSettings = c.opts.Source.Subscribe(func(*config.Settings) {
		c.opts.Dispatch(c.settingsChanged)
	})
	c.cancelMonitors = c.opts.Monitors.Subscribe(c.monitorsChanged)

	c.Recompute()

	if c.opts.ClipFlag != nil {
		c.probeTimer = c.opts.Scheduler.AfterFunc(c.opts.ProbeDelay, c.ProbeClipFlag)
	}

	c.logger.Info("osd controller enabled", "monitors", c.registry.Len())
}

// Disable reverts every side effect of Enable. It is safe to call at any
// time, including more than once or before Enable.
func (c *Controller) Disable() {
	if !c.enabled {
		return
	}
	c.enabled = false

	if c.cancelSettings != nil {
		c.cancelSettings()
		c.cancelSettings = nil
	}
	if c.cancelMonitors != nil {
		c.cancelMonitors()
		c.cancelMonitors = nil
	}
	if c.probeTimer != nil {
		c.probeTimer.Stop()
		c.probeTimer = nil
	}

	for _, idx := range c.registry.Indexes() {
		c.teardown(idx)
	}
	c.lastRing = ""
	c.ringReady = false

	c.logger.Info("osd controller disabled")
}

func (c *Controller) settingsChanged() {
	if !c.enabled {
		return
	}
	c.Recompute()
	if c.opts.PreviewOnChange {
		c.ShowAll(SampleRequest())
	}
}

func (c *Controller) monitorsChanged() {
	if !c.enabled {
		return
	}
	c.Recompute()
}

// Recompute reads the current settings and monitor layout and applies a fresh
// style to every instance. Instances of vanished monitors are torn down.
func (c *Controller) Recompute() {
	if !c.enabled {
		return
	}

	settings := config.DefaultSettings()
	if current := c.opts.Source.Current(); current != nil {
		settings = current.Clone()
		settings.Sanitize()
	}
	monitors := c.opts.Monitors.Monitors()
	descriptors := style.Compute(settings, monitors)
	c.settings = settings
	c.lastRing = ""

	present := make(map[int]bool, len(monitors))
	for i, m := range monitors {
		present[m.Index] = true

		inst := c.registry.Get(m.Index)
		if inst == nil {
			inst = c.attach(m)
		}
		inst.monitor = m
		c.apply(inst, descriptors[i])
	}

	for _, idx := range c.registry.Indexes() {
		if !present[idx] {
			c.teardown(idx)
		}
	}

	c.logger.Debug("styles recomputed",
		"monitors", len(monitors),
		"effect", settings.BgEffect,
	)
}

func (c *Controller) attach(m model.Monitor) *Instance {
	inst := &Instance{
		monitor:   m,
		presenter: c.opts.Presenters.Attach(m),
	}
	index := m.Index
	inst.cancelLevel = inst.presenter.SubscribeLevel(func(percent float64) {
		c.SetLevel(index, percent)
	})
	c.registry.put(index, inst)
	return inst
}

func (c *Controller) apply(inst *Instance, d style.Descriptor) {
	inst.descriptor = d
	inst.presenter.Apply(d)
	inst.presenter.SetBlur(d.Blur)

	if !d.Blur && inst.stopBlurTimer() {
		c.setClipFlag(false)
	}

	// A visible OSD keeps its show state from the previous style otherwise.
	if inst.state != StateHidden {
		c.resolve(inst)
		c.layout(inst)
	}
}

func (c *Controller) teardown(index int) {
	inst := c.registry.Get(index)
	if inst == nil {
		return
	}

	inst.stopHideTimer()
	if inst.stopBlurTimer() {
		c.setClipFlag(false)
	}
	if inst.cancelLevel != nil {
		inst.cancelLevel()
		inst.cancelLevel = nil
	}

	inst.presenter.SetBlur(false)
	inst.presenter.Reset()
	inst.state = StateHidden

	c.registry.remove(index)
	c.opts.Presenters.Detach(index)
}

// ProbeClipFlag records whether the clip flag is held by someone else. While
// it is, blur windows leave the flag alone. It runs once after Enable and
// again whenever the shared state changes.
func (c *Controller) ProbeClipFlag() {
	c.probeTimer = nil
	if !c.enabled || c.opts.ClipFlag == nil {
		return
	}
	for _, idx := range c.registry.Indexes() {
		if c.registry.Get(idx).HasBlurTimer() {
			// our own flag; nothing to learn
			return
		}
	}
	c.clipExternal = c.opts.ClipFlag.IsSet()
	c.logger.Debug("clip flag probed", "external", c.clipExternal)
}

func (c *Controller) setClipFlag(on bool) {
	if c.opts.ClipFlag == nil {
		return
	}
	if err := c.opts.ClipFlag.Set(on); err != nil {
		c.logger.Warn("failed to update clip flag", "on", on, "error", err)
	}
}
