package daemon

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/osdui/internal/config"
	"github.com/jmylchreest/osdui/internal/dbus"
	"github.com/jmylchreest/osdui/internal/model"
)

type fakeController struct {
	all      []model.ShowRequest
	single   map[int][]model.ShowRequest
	probes   int
	enabled  bool
	count    int
	settings *config.Settings
}

func newFakeController() *fakeController {
	return &fakeController{
		single:   make(map[int][]model.ShowRequest),
		enabled:  true,
		count:    2,
		settings: config.DefaultSettings(),
	}
}

func (c *fakeController) ShowAll(req model.ShowRequest) { c.all = append(c.all, req) }
func (c *fakeController) Show(index int, req model.ShowRequest) {
	c.single[index] = append(c.single[index], req)
}
func (c *fakeController) ProbeClipFlag()             { c.probes++ }
func (c *fakeController) Enabled() bool              { return c.enabled }
func (c *fakeController) Instances() int             { return c.count }
func (c *fakeController) Settings() *config.Settings { return c.settings }

type fakeConfig struct {
	*config.StaticSource
	reloadErr error
	reloads   int
}

func (c *fakeConfig) Reload() error {
	c.reloads++
	return c.reloadErr
}

type fakeTheme struct {
	current string
	loads   []string
	err     error
}

func (t *fakeTheme) LoadTheme(name string) error {
	t.loads = append(t.loads, name)
	if t.err != nil {
		return t.err
	}
	t.current = name
	return nil
}

func (t *fakeTheme) CurrentTheme() string { return t.current }

type fakeRecorder struct{ ids []string }

func (r *fakeRecorder) RecordShow(id string) error {
	r.ids = append(r.ids, id)
	return nil
}

type fakeSignals struct {
	ids      []string
	monitors []int
}

func (s *fakeSignals) EmitShown(id string, monitor int) error {
	s.ids = append(s.ids, id)
	s.monitors = append(s.monitors, monitor)
	return nil
}

type harness struct {
	daemon   *Daemon
	ctrl     *fakeController
	cfg      *fakeConfig
	theme    *fakeTheme
	shows    *fakeRecorder
	signals  *fakeSignals
	sent     []*dbus.Notification
	dispatch int
}

func newHarness() *harness {
	h := &harness{
		ctrl:    newFakeController(),
		cfg:     &fakeConfig{StaticSource: config.NewStaticSource(config.DefaultSettings())},
		theme:   &fakeTheme{current: "default"},
		shows:   &fakeRecorder{},
		signals: &fakeSignals{},
	}
	notifier := NewNotifier(func(n *dbus.Notification) (uint32, error) {
		h.sent = append(h.sent, n)
		return uint32(len(h.sent)), nil
	}, nil)
	h.daemon = New(Options{
		Controller: h.ctrl,
		Config:     h.cfg,
		Theme:      h.theme,
		Notifier:   notifier,
		Shows:      h.shows,
		Signals:    h.signals,
		Dispatch: func(fn func()) {
			h.dispatch++
			fn()
		},
		Version: "1.2.3",
		Now:     func() time.Time { return time.Date(2026, 1, 2, 9, 5, 0, 0, time.UTC) },
	})
	return h
}

func TestShowSampleAndClock(t *testing.T) {
	h := newHarness()

	h.daemon.ShowSample()
	h.daemon.ShowClock()

	require.Len(t, h.ctrl.all, 2)
	assert.Equal(t, "Custom OSD", h.ctrl.all[0].Label)
	assert.Equal(t, 100.0, h.ctrl.all[0].Level)
	assert.Equal(t, "09:05", h.ctrl.all[1].Label)
	assert.False(t, h.ctrl.all[1].HasLevel)

	assert.Equal(t, []string{h.ctrl.all[0].ID, h.ctrl.all[1].ID}, h.shows.ids)
	assert.Equal(t, []int{dbus.AllMonitors, dbus.AllMonitors}, h.signals.monitors)
	assert.Equal(t, 2, h.dispatch, "every show runs on the event loop")
}

func TestShowLevelTargetsMonitor(t *testing.T) {
	h := newHarness()
	req := dbus.LevelRequest("audio-volume-medium-symbolic", "Speakers", 40)

	h.daemon.ShowLevel(req, 1)
	assert.Empty(t, h.ctrl.all)
	require.Len(t, h.ctrl.single[1], 1)
	assert.Equal(t, req.ID, h.ctrl.single[1][0].ID)
	assert.Equal(t, []int{1}, h.signals.monitors)

	h.daemon.ShowLevel(req, dbus.AllMonitors)
	assert.Len(t, h.ctrl.all, 1)
}

func TestReload(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.daemon.Reload())
	assert.Equal(t, 1, h.cfg.reloads)
	assert.Equal(t, []string{"default"}, h.theme.loads, "reload always re-reads the theme")
	require.Len(t, h.sent, 1)
	assert.Equal(t, "OSD Settings Reloaded", h.sent[0].Summary)
}

func TestReloadConfigError(t *testing.T) {
	h := newHarness()
	h.cfg.reloadErr = errors.New(`invalid bg-effect "sparkles"`)

	err := h.daemon.Reload()
	require.Error(t, err)
	assert.Empty(t, h.theme.loads, "theme untouched when settings fail")
	assert.Empty(t, h.sent, "the source reports its own errors")

	h.daemon.ConfigError(err)
	require.Len(t, h.sent, 1)
	assert.Equal(t, "OSD Settings Error", h.sent[0].Summary)
	assert.Contains(t, h.sent[0].Body, "sparkles")
	assert.Equal(t, dbus.UrgencyNormal, h.sent[0].Urgency())
}

func TestReloadThemeError(t *testing.T) {
	h := newHarness()
	h.theme.err = errors.New("theme not found")

	assert.Error(t, h.daemon.Reload())
	require.Len(t, h.sent, 1)
	assert.Equal(t, "OSD Theme Error", h.sent[0].Summary)
}

func TestSettingsChangeSwitchesTheme(t *testing.T) {
	h := newHarness()
	h.daemon.Start()
	defer h.daemon.Stop()

	same := config.DefaultSettings()
	h.cfg.Update(same)
	assert.Empty(t, h.theme.loads, "unchanged theme is not reloaded")

	next := config.DefaultSettings()
	next.Theme = "minimal"
	h.cfg.Update(next)
	assert.Equal(t, []string{"minimal"}, h.theme.loads)

	h.daemon.Stop()
	assert.Equal(t, 0, h.cfg.Subscribers())
}

func TestStatus(t *testing.T) {
	h := newHarness()
	h.ctrl.settings.BgEffect = config.EffectGlass

	st := h.daemon.Status()
	assert.Equal(t, dbus.Status{
		Version:  "1.2.3",
		Enabled:  true,
		Monitors: 2,
		Effect:   "glass",
		Theme:    "default",
	}, st)
}

func TestStatusTimeout(t *testing.T) {
	d := New(Options{
		Controller: newFakeController(),
		Dispatch:   func(func()) {},
		Version:    "1.2.3",
	})
	d.timeout = 10 * time.Millisecond

	assert.Equal(t, dbus.Status{Version: "1.2.3"}, d.Status())
	assert.ErrorIs(t, d.Reload(), ErrTimeout)
}

func TestClipFlagChanged(t *testing.T) {
	h := newHarness()
	h.daemon.ClipFlagChanged()
	assert.Equal(t, 1, h.ctrl.probes)
}
