package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"

	"github.com/jmylchreest/osdui/internal/osd"
)

// GlibScheduler runs one-shot callbacks on the GTK main loop.
type GlibScheduler struct{}

// AfterFunc schedules fn after d.
func (GlibScheduler) AfterFunc(d time.Duration, fn func()) osd.Timer {
	t := &glibTimer{}
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	t.handle = glib.TimeoutAdd(uint(ms), func() bool {
		if t.done {
			return false
		}
		t.done = true
		fn()
		return false
	})
	return t
}

type glibTimer struct {
	handle glib.SourceHandle
	done   bool
}

// Stop cancels the timer. Stopping a fired or stopped timer does nothing.
func (t *glibTimer) Stop() {
	if t.done {
		return
	}
	t.done = true
	glib.SourceRemove(t.handle)
}
