package osd

import (
	"sort"

	"github.com/jmylchreest/osdui/internal/model"
	"github.com/jmylchreest/osdui/internal/style"
)

// State is the visibility state of an instance.
type State int

const (
	StateHidden State = iota
	StateShowing
	StateVisible
)

func (s State) String() string {
	switch s {
	case StateShowing:
		return "showing"
	case StateVisible:
		return "visible"
	default:
		return "hidden"
	}
}

// Instance is the runtime state of the OSD on one monitor.
type Instance struct {
	monitor    model.Monitor
	presenter  Presenter
	descriptor style.Descriptor
	visibility Visibility
	state      State

	request   model.ShowRequest
	level     float64
	levelOn   bool
	showState style.ShowState

	hideTimer Timer
	hideGen   uint64
	blurTimer Timer
	blurGen   uint64

	cancelLevel func()
}

// Monitor returns the monitor the instance lives on.
func (i *Instance) Monitor() model.Monitor { return i.monitor }

// Descriptor returns the last applied style.
func (i *Instance) Descriptor() style.Descriptor { return i.descriptor }

// Visibility returns the parts made visible by the last show.
func (i *Instance) Visibility() Visibility { return i.visibility }

// State returns the current state.
func (i *Instance) State() State { return i.state }

// HasHideTimer reports whether a hide timer is pending.
func (i *Instance) HasHideTimer() bool { return i.hideTimer != nil }

// HasBlurTimer reports whether a clip-flag timer is pending.
func (i *Instance) HasBlurTimer() bool { return i.blurTimer != nil }

func (i *Instance) stopHideTimer() {
	if i.hideTimer != nil {
		i.hideTimer.Stop()
		i.hideTimer = nil
	}
	i.hideGen++
}

func (i *Instance) stopBlurTimer() bool {
	live := i.blurTimer != nil
	if live {
		i.blurTimer.Stop()
		i.blurTimer = nil
	}
	i.blurGen++
	return live
}

// Registry holds the instances by monitor index.
type Registry struct {
	instances map[int]*Instance
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[int]*Instance)}
}

// Get returns the instance of a monitor, or nil.
func (r *Registry) Get(index int) *Instance {
	return r.instances[index]
}

// Len returns the number of instances.
func (r *Registry) Len() int {
	return len(r.instances)
}

// Indexes returns the monitor indexes in ascending order.
func (r *Registry) Indexes() []int {
	out := make([]int, 0, len(r.instances))
	for idx := range r.instances {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

func (r *Registry) put(index int, inst *Instance) {
	r.instances[index] = inst
}

func (r *Registry) remove(index int) {
	delete(r.instances, index)
}
