package osd

import (
	"time"

	"github.com/jmylchreest/osdui/internal/config"
	"github.com/jmylchreest/osdui/internal/model"
	"github.com/jmylchreest/osdui/internal/ring"
	"github.com/jmylchreest/osdui/internal/style"
)

const (
	sampleIcon = "preferences-color-symbolic"
	clockIcon  = "preferences-system-time-symbolic"

	rotation = -90
)

// SampleRequest is the OSD shown by the "show sample" action and after
// settings changes.
func SampleRequest() model.ShowRequest {
	return model.NewShowRequest(sampleIcon).WithLabel("Custom OSD").WithLevel(100)
}

// ClockRequest is the clock OSD for the given time.
func ClockRequest(now time.Time) model.ShowRequest {
	return model.NewShowRequest(clockIcon).WithLabel(now.Format("15:04"))
}

// ShowAll shows req on every monitor.
func (c *Controller) ShowAll(req model.ShowRequest) {
	for _, idx := range c.registry.Indexes() {
		c.Show(idx, req)
	}
}

// Show runs the baseline show for req on one monitor followed by OnShow.
func (c *Controller) Show(index int, req model.ShowRequest) {
	inst := c.registry.Get(index)
	if inst == nil {
		c.logger.Debug("show for unknown monitor", "monitor", index, "id", req.ID)
		return
	}
	inst.presenter.SetContent(req)
	c.OnShow(index, req)
}

// OnShow is the hook run after the baseline show of a monitor's OSD. It
// applies the monitor filter, restarts the hide timer, resolves visibility,
// geometry and the background effect, then makes the OSD visible.
func (c *Controller) OnShow(index int, req model.ShowRequest) {
	if !c.enabled {
		return
	}
	inst := c.registry.Get(index)
	if inst == nil {
		return
	}
	s := c.settings

	if !s.Monitors.Allows(inst.monitor) {
		c.logger.Debug("show cancelled by monitor filter",
			"monitor", index,
			"filter", s.Monitors,
			"id", req.ID,
		)
		return
	}

	inst.state = StateShowing
	c.restartHideTimer(index, inst, s.HideDelay())

	inst.request = req
	inst.level = float64(model.DisplayedLevel(req.Level))
	c.resolve(inst)
	width, height := c.layout(inst)

	inst.presenter.Show()
	inst.state = StateVisible

	if inst.descriptor.Blur {
		c.startBlurWindow(inst, s.HideDelay())
	}

	c.logger.Debug("osd shown",
		"monitor", index,
		"id", req.ID,
		"kind", req.Kind(),
		"width", width,
		"height", height,
	)
}

// resolve applies the visible parts of the instance's last request.
func (c *Controller) resolve(inst *Instance) {
	vis, levelOn := resolveVisibility(c.settings, inst.request)
	inst.visibility = vis
	inst.levelOn = levelOn
	inst.presenter.SetVisibility(vis)
}

// layout sizes, shapes and positions the instance's box for the current
// descriptor and pushes the resulting show state. It returns the box size.
func (c *Controller) layout(inst *Instance) (float64, float64) {
	s := c.settings
	d := inst.descriptor

	inst.presenter.SetSquare(s.SquareCircle)
	width, height := inst.presenter.BoxSize()

	br1, br2 := d.CornerRadii(height)
	st := style.ShowState{
		PaddingRight: d.HorizontalPadding(inst.visibility.Numeric),
		Radius:       [2]float64{br1, br2},
	}
	if s.Rotate {
		st.Rotation = rotation
	}

	if d.Effect == config.EffectProgressRing {
		c.saveRingBox(ring.Box{Width: width, Height: height})
		if inst.levelOn && c.renderRing(inst) {
			st.BackgroundImage = style.ImageURL(c.opts.Ring.Path())
		} else {
			st.ClearBackground = true
		}
	}
	inst.showState = st
	inst.presenter.SetShowState(st)

	bw, bh := width, height
	if s.Rotate {
		bw, bh = height, width
	}
	m := inst.monitor
	x := style.Translation(s.Horizontal, float64(m.Width), bw)
	y := -style.Translation(s.Vertical, float64(m.Height), bh)
	inst.presenter.SetTranslation(x, y)

	return width, height
}

// resolveVisibility maps the request kind and its component toggles onto the
// visible parts. levelOn is the underlying level flag, which still gates the
// numeric label and the ring when the level bar itself is hidden.
func resolveVisibility(s *config.Settings, req model.ShowRequest) (Visibility, bool) {
	comp := s.ComponentsFor(req.Kind())
	levelOn := req.HasLevel

	return Visibility{
		Icon:     comp.Icon,
		Label:    comp.Label && req.HasLabel,
		LevelBar: comp.Level && levelOn && s.BgEffect != config.EffectProgressRing,
		Numeric:  comp.Numeric && levelOn,
	}, levelOn
}

func (c *Controller) restartHideTimer(index int, inst *Instance, delay time.Duration) {
	inst.stopHideTimer()
	gen := inst.hideGen
	inst.hideTimer = c.opts.Scheduler.AfterFunc(delay, func() {
		c.hide(index, gen)
	})
}

func (c *Controller) hide(index int, gen uint64) {
	inst := c.registry.Get(index)
	if inst == nil || inst.hideGen != gen {
		return
	}
	inst.hideTimer = nil
	inst.presenter.Hide()
	inst.state = StateHidden
	c.logger.Debug("osd hidden", "monitor", index)
}

// startBlurWindow disables clipped redraws for one hide delay so the blurred
// background follows what is under it. Nothing happens when the flag is owned
// by someone else or a window is already running.
func (c *Controller) startBlurWindow(inst *Instance, delay time.Duration) {
	if c.opts.ClipFlag == nil || c.clipExternal || inst.blurTimer != nil {
		return
	}
	c.setClipFlag(true)

	inst.blurGen++
	gen := inst.blurGen
	inst.blurTimer = c.opts.Scheduler.AfterFunc(delay, func() {
		if inst.blurGen != gen {
			return
		}
		inst.blurTimer = nil
		c.setClipFlag(false)
	})
}

// SetLevel observes level changes of a monitor's OSD and redraws the ring.
func (c *Controller) SetLevel(index int, percent float64) {
	if !c.enabled {
		return
	}
	inst := c.registry.Get(index)
	if inst == nil {
		return
	}
	if !c.settings.Monitors.Allows(inst.monitor) {
		return
	}
	inst.level = float64(model.DisplayedLevel(percent))

	if inst.state == StateHidden || !inst.levelOn || inst.descriptor.Effect != config.EffectProgressRing {
		return
	}
	if !c.renderRing(inst) {
		return
	}
	// The presenter only reloads the image when its show state is re-applied.
	inst.showState.BackgroundImage = style.ImageURL(c.opts.Ring.Path())
	inst.showState.ClearBackground = false
	inst.presenter.SetShowState(inst.showState)
}

func (c *Controller) saveRingBox(b ring.Box) {
	if !b.Valid() || b == c.savedBox {
		return
	}
	c.savedBox = b
	if c.opts.Boxes == nil {
		return
	}
	if err := c.opts.Boxes.SaveRingBox(b); err != nil {
		c.logger.Warn("failed to save ring box", "error", err)
	}
}

// RingStyle derives the progress ring style of a monitor from its settings
// and computed style.
func RingStyle(s *config.Settings, d style.Descriptor, saved ring.Box) ring.Style {
	return ring.Style{
		Thickness:    s.LevThickness,
		Gap:          s.RingGap,
		Radius:       d.RingRadius(saved.Height),
		Color:        d.LevelColor,
		TrackAlpha:   s.RingAlpha / 100,
		SquareCircle: d.SquareCircle,
		Saved:        saved,
	}
}

// renderRing writes the ring for the instance's level. It reports whether a
// ring image is available; on a write failure the previous image stays.
func (c *Controller) renderRing(inst *Instance) bool {
	if c.opts.Ring == nil {
		return false
	}

	st := RingStyle(c.settings, inst.descriptor, c.savedBox)
	svg, g := ring.Render(inst.level, c.savedBox.Width, c.savedBox.Height, st)
	if svg == c.lastRing {
		return true
	}

	if err := c.opts.Ring.Write(svg); err != nil {
		c.logger.Warn("failed to write ring image",
			"path", c.opts.Ring.Path(),
			"level", g.Level,
			"error", err,
		)
		return c.ringReady
	}
	c.lastRing = svg
	c.ringReady = true

	c.logger.Debug("ring rendered",
		"level", g.Level,
		"perimeter", g.Perimeter,
		"offset", g.DashOffset,
	)
	return true
}
