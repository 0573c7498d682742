package dbus

import (
	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/osdui/internal/model"
)

const (
	// ServiceInterface is the OSD control interface name.
	ServiceInterface = "io.github.jmylchreest.Osdui1"
	// ServicePath is the OSD control object path.
	ServicePath = "/io/github/jmylchreest/Osdui"
	// ServiceBusName is the bus name the daemon claims.
	ServiceBusName = "io.github.jmylchreest.Osdui1"

	// AllMonitors targets every monitor in ShowLevel.
	AllMonitors = -1
)

// Handler executes the service methods. Calls arrive on the bus goroutine.
type Handler interface {
	ShowSample()
	ShowClock()
	ShowLevel(req model.ShowRequest, monitor int)
	Reload() error
	Status() Status
}

// Status is the daemon state returned by GetStatus.
type Status struct {
	Version  string `json:"version" yaml:"version"`
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Monitors int    `json:"monitors" yaml:"monitors"`
	Effect   string `json:"effect" yaml:"effect"`
	Theme    string `json:"theme" yaml:"theme"`
}

// LevelRequest builds the show request of a ShowLevel call. A negative level
// means the OSD has no level; an empty label means it has no label.
func LevelRequest(icon, label string, level float64) model.ShowRequest {
	req := model.NewShowRequest(icon).WithLabel(label)
	if level >= 0 {
		req = req.WithLevel(level)
	}
	return req
}

// Urgency levels of org.freedesktop.Notifications.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// Notification is an outgoing org.freedesktop.Notifications.Notify call.
type Notification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// Urgency returns the urgency hint, or normal when unset.
func (n *Notification) Urgency() byte {
	if v, ok := n.Hints["urgency"]; ok {
		if u, ok := v.Value().(byte); ok {
			return u
		}
	}
	return UrgencyNormal
}

// Transient reports whether the transient hint is set.
func (n *Notification) Transient() bool {
	if v, ok := n.Hints["transient"]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

// args returns the Notify arguments in wire order.
func (n *Notification) args() []any {
	actions := n.Actions
	if actions == nil {
		actions = []string{}
	}
	hints := n.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}
	return []any{
		n.AppName,
		n.ReplacesID,
		n.AppIcon,
		n.Summary,
		n.Body,
		actions,
		hints,
		n.ExpireTimeout,
	}
}
