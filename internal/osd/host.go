// Package osd drives the per-monitor OSD instances: it applies computed styles,
// runs the show/hide state machine and resolves the background effects.
//
// The controller never touches windows, timers or the compositor directly; it
// reaches them through the interfaces in this file. All Controller methods
// and every callback it hands out must run on the same event loop.
package osd

import (
	"time"

	"github.com/jmylchreest/osdui/internal/model"
	"github.com/jmylchreest/osdui/internal/ring"
	"github.com/jmylchreest/osdui/internal/style"
)

// Visibility is the resolved set of visible OSD parts.
type Visibility struct {
	Icon     bool
	Label    bool
	LevelBar bool
	Numeric  bool
}

// Presenter is one per-monitor OSD window.
type Presenter interface {
	// SetContent is the baseline show: icon, label text and level value.
	SetContent(req model.ShowRequest)
	// Apply installs a computed style, replacing the previous one.
	Apply(d style.Descriptor)
	SetVisibility(v Visibility)
	// SetSquare forces the box height to its width when on.
	SetSquare(on bool)
	// BoxSize returns the current box size in pixels.
	BoxSize() (width, height float64)
	SetShowState(st style.ShowState)
	SetTranslation(x, y float64)
	// SetBlur adds or removes the background blur. Removing an absent blur is a no-op.
	SetBlur(on bool)
	Show()
	Hide()
	// Reset reverts every style, rotation and translation to the defaults.
	Reset()
	// SubscribeLevel calls fn whenever the displayed level changes.
	SubscribeLevel(fn func(percent float64)) (cancel func())
}

// PresenterFactory creates and releases per-monitor presenters.
type PresenterFactory interface {
	Attach(m model.Monitor) Presenter
	Detach(index int)
}

// Monitors is the read-only monitor layout.
type Monitors interface {
	Monitors() []model.Monitor
	// Subscribe calls fn after every layout change.
	Subscribe(fn func()) (cancel func())
}

// Timer is a pending one-shot callback.
type Timer interface {
	Stop()
}

// Scheduler runs callbacks on the event loop after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// ClipFlag is the compositor "disable clipped redraws" flag.
type ClipFlag interface {
	IsSet() bool
	Set(on bool) error
}

// RingSink persists rendered ring images.
type RingSink interface {
	Write(svg string) error
	Path() string
}

// BoxStore keeps the last known ring box across restarts.
type BoxStore interface {
	RingBox() ring.Box
	SaveRingBox(b ring.Box) error
}
