package dbus

import (
	"errors"
	"math"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/osdui/internal/model"
)

func TestLevelRequest(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		level    float64
		hasLevel bool
		kind     model.Kind
	}{
		{name: "label and level", label: "Volume", level: 40, hasLevel: true, kind: model.KindAll},
		{name: "level only", level: 0, hasLevel: true, kind: model.KindNoLabel},
		{name: "label only", label: "Caps Lock", level: -1, kind: model.KindNoLevel},
		{name: "icon only", level: -1, kind: model.KindIconOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := LevelRequest("audio-volume-high-symbolic", tt.label, tt.level)
			assert.Equal(t, "audio-volume-high-symbolic", req.Icon)
			assert.Equal(t, tt.hasLevel, req.HasLevel)
			assert.Equal(t, tt.kind, req.Kind())
			assert.NotEmpty(t, req.ID)
		})
	}
}

func TestUrgency(t *testing.T) {
	tests := []struct {
		name     string
		hints    map[string]dbus.Variant
		expected byte
	}{
		{
			name:     "no hint",
			hints:    nil,
			expected: UrgencyNormal,
		},
		{
			name:     "low urgency",
			hints:    map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(0))},
			expected: UrgencyLow,
		},
		{
			name:     "critical urgency",
			hints:    map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(2))},
			expected: UrgencyCritical,
		},
		{
			name:     "wrong type returns normal",
			hints:    map[string]dbus.Variant{"urgency": dbus.MakeVariant("high")},
			expected: UrgencyNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Notification{Hints: tt.hints}
			assert.Equal(t, tt.expected, n.Urgency())
		})
	}
}

func TestTransient(t *testing.T) {
	assert.False(t, (&Notification{}).Transient())
	assert.True(t, (&Notification{Hints: map[string]dbus.Variant{"transient": dbus.MakeVariant(true)}}).Transient())
	assert.False(t, (&Notification{Hints: map[string]dbus.Variant{"transient": dbus.MakeVariant("yes")}}).Transient())
}

func TestNotificationArgs(t *testing.T) {
	n := &Notification{AppName: "osduid", Summary: "Configuration Error", ExpireTimeout: 5000}
	args := n.args()

	require.Len(t, args, 8)
	assert.Equal(t, "osduid", args[0])
	assert.Equal(t, uint32(0), args[1])
	assert.Equal(t, "Configuration Error", args[3])
	assert.Equal(t, []string{}, args[5], "nil actions are sent as an empty array")
	assert.Equal(t, map[string]dbus.Variant{}, args[6])
	assert.Equal(t, int32(5000), args[7])
}

type fakeHandler struct {
	samples   int
	clocks    int
	levels    []model.ShowRequest
	monitors  []int
	reloadErr error
	reloads   int
	status    Status
}

func (h *fakeHandler) ShowSample() { h.samples++ }
func (h *fakeHandler) ShowClock()  { h.clocks++ }
func (h *fakeHandler) ShowLevel(req model.ShowRequest, monitor int) {
	h.levels = append(h.levels, req)
	h.monitors = append(h.monitors, monitor)
}
func (h *fakeHandler) Reload() error  { h.reloads++; return h.reloadErr }
func (h *fakeHandler) Status() Status { return h.status }

func TestServiceMethods(t *testing.T) {
	h := &fakeHandler{status: Status{Version: "1.0.0", Enabled: true, Monitors: 2, Effect: "none", Theme: "default"}}
	s := NewService(h, nil)

	assert.Nil(t, s.ShowSample())
	assert.Nil(t, s.ShowClock())
	assert.Equal(t, 1, h.samples)
	assert.Equal(t, 1, h.clocks)

	id, derr := s.ShowLevel("display-brightness-symbolic", "", 55, AllMonitors)
	require.Nil(t, derr)
	require.Len(t, h.levels, 1)
	assert.Equal(t, h.levels[0].ID, id)
	assert.Equal(t, 55.0, h.levels[0].Level)
	assert.Equal(t, []int{AllMonitors}, h.monitors)

	version, enabled, monitors, effect, theme, derr := s.GetStatus()
	require.Nil(t, derr)
	assert.Equal(t, "1.0.0", version)
	assert.True(t, enabled)
	assert.Equal(t, int32(2), monitors)
	assert.Equal(t, "none", effect)
	assert.Equal(t, "default", theme)
}

func TestServiceShowLevelRejectsNonFinite(t *testing.T) {
	h := &fakeHandler{}
	s := NewService(h, nil)

	for _, level := range []float64{math.NaN(), math.Inf(1)} {
		_, derr := s.ShowLevel("x", "", level, 0)
		assert.NotNil(t, derr)
	}
	assert.Empty(t, h.levels)
}

func TestServiceReload(t *testing.T) {
	h := &fakeHandler{}
	s := NewService(h, nil)

	// Not connected: the signal is skipped but the reload succeeds.
	assert.Nil(t, s.Reload())

	h.reloadErr = errors.New("invalid bg-effect")
	derr := s.Reload()
	require.NotNil(t, derr)
	assert.Contains(t, derr.Error(), "invalid bg-effect")
	assert.Equal(t, 2, h.reloads)
}

func TestEmitWithoutConnection(t *testing.T) {
	s := NewService(&fakeHandler{}, nil)
	assert.Error(t, s.EmitShown("id", 0))
	assert.Error(t, s.EmitReloaded())
}
