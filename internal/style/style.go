// Package style turns a settings snapshot into per-monitor presentation
// descriptors. Everything here is pure: the same snapshot and monitor always
// produce the same Descriptor.
package style

import (
	"math"

	"github.com/jmylchreest/osdui/internal/config"
	"github.com/jmylchreest/osdui/internal/model"
)

const (
	// sizeOffset remaps the user-facing [0,100] size to the internal [10,110]
	// scale; below 10 the OSD is illegible.
	sizeOffset = 10

	metricDivisor = 55
	fontDivisor   = 22
	baseFontSize  = 12

	// fallbackHeight is used for monitors that report no geometry yet.
	fallbackHeight = 1080
)

// Descriptor is the computed presentation of the OSD on one monitor.
type Descriptor struct {
	Monitor model.Monitor `json:"monitor" yaml:"monitor"`

	// Size is the internal [10,110] size.
	Size float64 `json:"size" yaml:"size"`

	Foreground model.RGBA `json:"foreground" yaml:"foreground"`
	LabelColor model.RGBA `json:"label_color" yaml:"label_color"`
	LevelColor model.RGBA `json:"level_color" yaml:"level_color"`
	TrackColor model.RGBA `json:"track_color" yaml:"track_color"`

	IconSize        int     `json:"icon_size" yaml:"icon_size"`
	IconMargin      float64 `json:"icon_margin" yaml:"icon_margin"`
	VPadding        float64 `json:"vpadding" yaml:"vpadding"`
	HPadding        float64 `json:"hpadding" yaml:"hpadding"`
	LeftPadding     float64 `json:"left_padding" yaml:"left_padding"`
	Spacing         float64 `json:"spacing" yaml:"spacing"`
	LevelThickness  int     `json:"level_thickness" yaml:"level_thickness"`
	LevelMinWidth   int     `json:"level_min_width" yaml:"level_min_width"`
	NumericMinWidth int     `json:"numeric_min_width" yaml:"numeric_min_width"`
	NumericFontSize float64 `json:"numeric_font_size" yaml:"numeric_font_size"`

	Border      bool       `json:"border" yaml:"border"`
	BorderWidth int        `json:"border_width" yaml:"border_width"`
	BorderColor model.RGBA `json:"border_color" yaml:"border_color"`

	Shadow Shadow `json:"shadow" yaml:"shadow"`

	// Radii are the corner radius percentages (br1, br2) of the box.
	Radii [2]float64 `json:"radii" yaml:"radii"`

	Effect config.BgEffect `json:"effect" yaml:"effect"`

	// Fields owned by the background effect. Only the active effect sets them.
	HasBackgroundColor bool       `json:"has_background_color" yaml:"has_background_color"`
	BackgroundColor    model.RGBA `json:"background_color" yaml:"background_color"`
	BackgroundImage    string     `json:"background_image,omitempty" yaml:"background_image,omitempty"`
	Blur               bool       `json:"blur" yaml:"blur"`

	Font Font `json:"font" yaml:"font"`

	Rotate       bool `json:"rotate" yaml:"rotate"`
	SquareCircle bool `json:"square_circle" yaml:"square_circle"`
}

// InternalSize maps the user-facing size percent to the internal scale.
func InternalSize(size float64) float64 {
	if math.IsNaN(size) || math.IsInf(size, 0) {
		size = config.DefaultSettings().Size
	}
	return math.Max(0, math.Min(size, 100)) + sizeOffset
}

// Compute derives one Descriptor per monitor, in monitor order.
// The snapshot is not modified.
func Compute(settings *config.Settings, monitors []model.Monitor) []Descriptor {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	s := settings.Clone()
	s.Sanitize()

	out := make([]Descriptor, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, computeOne(s, m))
	}
	return out
}

// ComputeOne derives the Descriptor of a single monitor.
func ComputeOne(settings *config.Settings, monitor model.Monitor) Descriptor {
	return Compute(settings, []model.Monitor{monitor})[0]
}

func computeOne(s *config.Settings, m model.Monitor) Descriptor {
	size := InternalSize(s.Size)
	scaled := func(v float64) float64 {
		return math.Round(v * size / metricDivisor)
	}

	height := float64(m.Height)
	if height <= 0 {
		height = fallbackHeight
	}

	d := Descriptor{
		Monitor:      m,
		Size:         size,
		Rotate:       s.Rotate,
		SquareCircle: s.SquareCircle,
		Effect:       s.BgEffect,
	}

	fg := s.Foreground()
	d.Foreground = fg
	d.LabelColor = fg.WithAlpha(fg.A * 0.95)
	d.LevelColor = s.LevelColor()
	d.TrackColor = d.LevelColor.WithAlpha(d.LevelColor.A * s.RingAlpha / 100)

	d.IconSize = int(math.Max(1, math.Round(size/150*height/5)))
	d.IconMargin = 0.2 * float64(d.IconSize)

	d.VPadding = scaled(s.VPadding)
	d.HPadding = scaled(s.HPadding)
	d.LeftPadding = (100-size)/10 + d.HPadding*1.25
	d.Spacing = 0.75 * d.HPadding

	d.LevelThickness = int(scaled(s.LevThickness))
	d.LevelMinWidth = int(math.Round(3 * float64(d.IconSize)))
	d.NumericMinWidth = int(math.Round((100-size)/10 + size*2.22))

	d.Border = s.Border
	if s.Border {
		d.BorderWidth = int(scaled(s.BThickness))
		d.BorderColor = s.BorderColor()
	}

	d.Font = ResolveFont(s.Font, s.DefaultFont, size)
	d.NumericFontSize = d.Font.Size * 1.2

	br1, br2 := ShapeRadii(s.BRadius)
	if s.BgEffect == config.EffectProgressRing {
		br2 = br1
	}
	d.Radii = [2]float64{br1, br2}

	d.Shadow = Shadow{
		Tier:  ShadowFor(s.Shadow, s.BRadius, size, s.BgEffect),
		Color: shadowColor(s),
	}

	applyEffect(&d, s)
	return d
}

// ResolveFont picks the configured font, falling back to the default font,
// and scales its size by the internal size. An unset size uses the base size.
func ResolveFont(font, defaultFont string, size float64) Font {
	f := ParseFont(font)
	if f.Family == "" {
		fallback := ParseFont(defaultFont)
		f.Family = fallback.Family
		if font == "" {
			f = fallback
			f.Size = 0
		}
	}
	base := f.Size
	if base <= 0 {
		base = baseFontSize
	}
	f.Size = base * size / fontDivisor
	return f
}

func shadowColor(s *config.Settings) model.RGBA {
	sh := s.ShadowColor()
	return sh.WithAlpha((0.05 + 0.2*s.Alpha/100) * sh.A)
}

// HorizontalPadding returns the trailing padding of the box. A visible numeric
// label takes up the space, otherwise the box is padded out so the icon stays
// visually centered.
func (d Descriptor) HorizontalPadding(numericShown bool) float64 {
	if numericShown {
		return math.Max(d.HPadding-(100-d.Size)/10, 0)
	}
	return math.Max(d.HPadding*1.65+(100-d.Size)/10, 0)
}

// CornerRadii returns the pixel corner radii for a box of the given height.
func (d Descriptor) CornerRadii(height float64) (float64, float64) {
	return CornerRadius(d.Radii[0], height), CornerRadius(d.Radii[1], height)
}

// RingRadius is the configured ring corner radius in pixels.
func (d Descriptor) RingRadius(height float64) float64 {
	return CornerRadius(d.Radii[0], height)
}
