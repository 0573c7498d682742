// Package config handles the osdui settings: loading, defaults, validation and
// change notification.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/jmylchreest/osdui/internal/model"
)

// BgEffect is the exclusive background treatment of the OSD box.
type BgEffect string

const (
	EffectNone            BgEffect = "none"
	EffectProgressRing    BgEffect = "progress-ring"
	EffectDynamicBlur     BgEffect = "dynamic-blur"
	EffectGradient        BgEffect = "gradient"
	EffectGlass           BgEffect = "glass"
	EffectWoodRaw         BgEffect = "wood1"
	EffectWoodPolished    BgEffect = "wood2"
	EffectBackgroundImage BgEffect = "background-image"
)

// ValidEffects returns all valid background effects.
func ValidEffects() []BgEffect {
	return []BgEffect{
		EffectNone,
		EffectProgressRing,
		EffectDynamicBlur,
		EffectGradient,
		EffectGlass,
		EffectWoodRaw,
		EffectWoodPolished,
		EffectBackgroundImage,
	}
}

// GradientDirection is the orientation of the gradient effect.
type GradientDirection string

const (
	GradientHorizontal GradientDirection = "horizontal"
	GradientVertical   GradientDirection = "vertical"
	GradientRadial     GradientDirection = "radial"
)

// ValidGradientDirections returns all valid gradient directions.
func ValidGradientDirections() []GradientDirection {
	return []GradientDirection{GradientHorizontal, GradientVertical, GradientRadial}
}

// MonitorFilter restricts which monitors show OSDs.
type MonitorFilter string

const (
	MonitorsAll      MonitorFilter = "all"
	MonitorsPrimary  MonitorFilter = "primary"
	MonitorsExternal MonitorFilter = "external"
)

// ValidMonitorFilters returns all valid monitor filters.
func ValidMonitorFilters() []MonitorFilter {
	return []MonitorFilter{MonitorsAll, MonitorsPrimary, MonitorsExternal}
}

// Allows reports whether an OSD may be shown on the given monitor.
func (f MonitorFilter) Allows(m model.Monitor) bool {
	switch f {
	case MonitorsPrimary:
		return m.Primary
	case MonitorsExternal:
		return !m.Primary
	default:
		return true
	}
}

// Components toggles the optional parts of one OSD kind.
type Components struct {
	Icon    bool `toml:"icon"`
	Label   bool `toml:"label"`
	Level   bool `toml:"level"`
	Numeric bool `toml:"numeric"`
}

// Settings is one immutable snapshot of the configuration.
// Percentages are in [0,100]; colors are 3- or 4-tuples of [0,1] channels.
// A snapshot handed out by a Source must not be modified; use Clone.
type Settings struct {
	Size  float64 `toml:"size"`  // user-facing [0,100]
	Delay float64 `toml:"delay"` // hide timeout in milliseconds

	Color    []float64 `toml:"color"`
	BgColor  []float64 `toml:"bgcolor"`
	BgColor2 []float64 `toml:"bgcolor2"`
	LevColor []float64 `toml:"levcolor"`
	BColor   []float64 `toml:"bcolor"`
	ShColor  []float64 `toml:"shcolor"`

	Alpha     float64 `toml:"alpha"`
	Alpha2    float64 `toml:"alpha2"`
	LevAlpha  float64 `toml:"levalpha"`
	BAlpha    float64 `toml:"balpha"`
	RingAlpha float64 `toml:"ring-alpha"`

	BgEffect          BgEffect          `toml:"bg-effect"`
	GradientDirection GradientDirection `toml:"gradient-direction"`
	BackgroundImage   string            `toml:"background-image"`

	Shadow       bool `toml:"shadow"`
	Border       bool `toml:"border"`
	Rotate       bool `toml:"rotate"`
	SquareCircle bool `toml:"square-circle"`

	Font        string `toml:"font"`
	DefaultFont string `toml:"default-font"`

	BRadius      float64 `toml:"bradius"` // [-100,200]
	LevThickness float64 `toml:"levthickness"`
	BThickness   float64 `toml:"bthickness"`
	HPadding     float64 `toml:"hpadding"`
	VPadding     float64 `toml:"vpadding"`
	RingGap      float64 `toml:"ring-gap"`

	Monitors   MonitorFilter `toml:"monitors"`
	Horizontal float64       `toml:"horizontal"` // [-50,50]
	Vertical   float64       `toml:"vertical"`   // [-50,50]

	Theme string `toml:"theme"`

	OSDAll     Components `toml:"osd-all"`
	OSDNoLabel Components `toml:"osd-nolabel"`
	OSDNoLevel Components `toml:"osd-nolevel"`
}

// DefaultSettings returns a Settings with every option at its default.
func DefaultSettings() *Settings {
	return &Settings{
		Size:  30,
		Delay: 1500,

		Color:    []float64{1, 1, 1, 1},
		BgColor:  []float64{0.1, 0.1, 0.1},
		BgColor2: []float64{0.3, 0.3, 0.35},
		LevColor: []float64{1, 1, 1},
		BColor:   []float64{1, 1, 1},
		ShColor:  []float64{0, 0, 0},

		Alpha:     90,
		Alpha2:    90,
		LevAlpha:  100,
		BAlpha:    25,
		RingAlpha: 25,

		BgEffect:          EffectNone,
		GradientDirection: GradientHorizontal,

		Shadow: true,

		DefaultFont: "Cantarell 11",

		BRadius:      100,
		LevThickness: 20,
		BThickness:   10,
		HPadding:     25,
		VPadding:     25,
		RingGap:      10,

		Monitors: MonitorsAll,
		Vertical: 35,

		Theme: "default",

		OSDAll:     Components{Icon: true, Label: true, Level: true, Numeric: true},
		OSDNoLabel: Components{Icon: true, Label: true, Level: true, Numeric: true},
		OSDNoLevel: Components{Icon: true, Label: true, Level: true, Numeric: true},
	}
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s
	c.Color = cloneTuple(s.Color)
	c.BgColor = cloneTuple(s.BgColor)
	c.BgColor2 = cloneTuple(s.BgColor2)
	c.LevColor = cloneTuple(s.LevColor)
	c.BColor = cloneTuple(s.BColor)
	c.ShColor = cloneTuple(s.ShColor)
	return &c
}

func cloneTuple(t []float64) []float64 {
	if t == nil {
		return nil
	}
	return append([]float64(nil), t...)
}

// Validate checks the enumerated options.
func (s *Settings) Validate() error {
	if !contains(ValidEffects(), s.BgEffect) {
		return fmt.Errorf("invalid bg-effect %q, must be one of: %v", s.BgEffect, ValidEffects())
	}
	if !contains(ValidGradientDirections(), s.GradientDirection) {
		return fmt.Errorf("invalid gradient-direction %q, must be one of: %v", s.GradientDirection, ValidGradientDirections())
	}
	if !contains(ValidMonitorFilters(), s.Monitors) {
		return fmt.Errorf("invalid monitors %q, must be one of: %v", s.Monitors, ValidMonitorFilters())
	}
	for name, tuple := range s.colorTuples() {
		if n := len(*tuple); n != 3 && n != 4 {
			return fmt.Errorf("%s must have 3 or 4 channels, got %d", name, n)
		}
	}
	return nil
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Sanitize clamps numeric options into range and replaces NaN/Inf and malformed
// color tuples with defaults, so no invalid value reaches geometry math.
func (s *Settings) Sanitize() {
	d := DefaultSettings()

	s.Size = clamp(s.Size, 0, 100, d.Size)
	s.Delay = clamp(s.Delay, 100, 60000, d.Delay)

	s.Alpha = clamp(s.Alpha, 0, 100, d.Alpha)
	s.Alpha2 = clamp(s.Alpha2, 0, 100, d.Alpha2)
	s.LevAlpha = clamp(s.LevAlpha, 0, 100, d.LevAlpha)
	s.BAlpha = clamp(s.BAlpha, 0, 100, d.BAlpha)
	s.RingAlpha = clamp(s.RingAlpha, 0, 100, d.RingAlpha)

	s.BRadius = clamp(s.BRadius, -100, 200, d.BRadius)
	s.LevThickness = clamp(s.LevThickness, 0, 100, d.LevThickness)
	s.BThickness = clamp(s.BThickness, 0, 100, d.BThickness)
	s.HPadding = clamp(s.HPadding, 0, 100, d.HPadding)
	s.VPadding = clamp(s.VPadding, 0, 100, d.VPadding)
	s.RingGap = clamp(s.RingGap, 0, 100, d.RingGap)

	s.Horizontal = clamp(s.Horizontal, -50, 50, d.Horizontal)
	s.Vertical = clamp(s.Vertical, -50, 50, d.Vertical)

	defaults := d.colorTuples()
	for name, tuple := range s.colorTuples() {
		if n := len(*tuple); n != 3 && n != 4 {
			*tuple = cloneTuple(*defaults[name])
		}
	}

	if !contains(ValidEffects(), s.BgEffect) {
		s.BgEffect = d.BgEffect
	}
	if !contains(ValidGradientDirections(), s.GradientDirection) {
		s.GradientDirection = d.GradientDirection
	}
	if !contains(ValidMonitorFilters(), s.Monitors) {
		s.Monitors = d.Monitors
	}
}

func (s *Settings) colorTuples() map[string]*[]float64 {
	return map[string]*[]float64{
		"color":    &s.Color,
		"bgcolor":  &s.BgColor,
		"bgcolor2": &s.BgColor2,
		"levcolor": &s.LevColor,
		"bcolor":   &s.BColor,
		"shcolor":  &s.ShColor,
	}
}

func clamp(v, lo, hi, def float64) float64 {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return def
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// HideDelay returns the hide timeout.
func (s *Settings) HideDelay() time.Duration {
	return time.Duration(s.Delay * float64(time.Millisecond))
}

// ComponentsFor returns the component toggles for an OSD kind.
// Icon-only OSDs always show their icon and nothing else.
func (s *Settings) ComponentsFor(kind model.Kind) Components {
	switch kind {
	case model.KindAll:
		return s.OSDAll
	case model.KindNoLabel:
		return s.OSDNoLabel
	case model.KindNoLevel:
		return s.OSDNoLevel
	default:
		return Components{Icon: true}
	}
}

// Foreground returns the text/icon color.
func (s *Settings) Foreground() model.RGBA {
	return model.ColorFromTuple(s.Color)
}

// Background returns the box color at its configured opacity.
func (s *Settings) Background() model.RGBA {
	return model.ColorFromTuple(s.BgColor).WithAlpha(s.Alpha / 100)
}

// GradientEnd returns the second gradient stop at its configured opacity.
func (s *Settings) GradientEnd() model.RGBA {
	return model.ColorFromTuple(s.BgColor2).WithAlpha(s.Alpha2 / 100)
}

// LevelColor returns the level bar/ring color at its configured opacity.
func (s *Settings) LevelColor() model.RGBA {
	return model.ColorFromTuple(s.LevColor).WithAlpha(s.LevAlpha / 100)
}

// BorderColor returns the border color at its configured opacity.
func (s *Settings) BorderColor() model.RGBA {
	return model.ColorFromTuple(s.BColor).WithAlpha(s.BAlpha / 100)
}

// ShadowColor returns the shadow color; its alpha comes from the tuple.
func (s *Settings) ShadowColor() model.RGBA {
	return model.ColorFromTuple(s.ShColor)
}
