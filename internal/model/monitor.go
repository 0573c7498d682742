package model

import "strings"

// Monitor is the geometry of one physical monitor as seen by the core.
// It is read fresh on every recompute because monitors come and go.
type Monitor struct {
	Index     int    `json:"index" yaml:"index"`
	Width     int    `json:"width" yaml:"width"`
	Height    int    `json:"height" yaml:"height"`
	Primary   bool   `json:"primary" yaml:"primary"`
	Connector string `json:"connector,omitempty" yaml:"connector,omitempty"`
}

// builtinConnectors are connector prefixes of laptop/internal panels.
var builtinConnectors = []string{"eDP", "LVDS", "DSI"}

// IsBuiltinConnector reports whether the connector name belongs to an internal panel.
func IsBuiltinConnector(connector string) bool {
	for _, prefix := range builtinConnectors {
		if strings.HasPrefix(connector, prefix) {
			return true
		}
	}
	return false
}

// MarkPrimary sets the Primary flag on exactly one monitor: the first internal
// panel if there is one, otherwise the first monitor.
func MarkPrimary(monitors []Monitor) {
	if len(monitors) == 0 {
		return
	}
	primary := 0
	for i, m := range monitors {
		if IsBuiltinConnector(m.Connector) {
			primary = i
			break
		}
	}
	for i := range monitors {
		monitors[i].Primary = i == primary
	}
}
