// Package model defines the core data structures shared by the osdui packages.
package model

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a color with normalized [0,1] channels.
type RGBA struct {
	R float64
	G float64
	B float64
	A float64
}

// ColorFromTuple builds a color from a 3- or 4-element channel tuple as stored in
// the configuration. Missing channels default to 0 and a missing alpha to 1.
// Out-of-range and NaN channels are clamped.
func ColorFromTuple(tuple []float64) RGBA {
	c := RGBA{A: 1}
	ch := []*float64{&c.R, &c.G, &c.B, &c.A}
	for i := 0; i < len(tuple) && i < len(ch); i++ {
		*ch[i] = tuple[i]
	}
	return c.Clamped()
}

// Clamped returns the color with every channel forced into [0,1].
// NaN channels become 0, except alpha which becomes 1.
func (c RGBA) Clamped() RGBA {
	return RGBA{
		R: clampUnit(c.R, 0),
		G: clampUnit(c.G, 0),
		B: clampUnit(c.B, 0),
		A: clampUnit(c.A, 1),
	}
}

// WithAlpha returns a copy of c with the given alpha.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = clampUnit(a, 1)
	return c
}

// RGB255 returns the 8-bit RGB channels, ignoring alpha.
func (c RGBA) RGB255() (uint8, uint8, uint8) {
	return c.colorful().RGB255()
}

// Hex returns the opaque #rrggbb form.
func (c RGBA) Hex() string {
	return c.colorful().Hex()
}

// CSS returns an rgba() expression usable in GTK CSS and SVG.
func (c RGBA) CSS() string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, FormatFloat(c.A))
}

// Blend mixes c towards other by t in RGB space. Alpha is interpolated linearly.
func (c RGBA) Blend(other RGBA, t float64) RGBA {
	t = clampUnit(t, 0)
	mixed := c.colorful().BlendRgb(other.colorful(), t).Clamped()
	return RGBA{R: mixed.R, G: mixed.G, B: mixed.B, A: c.A + (other.A-c.A)*t}
}

func (c RGBA) colorful() colorful.Color {
	cc := c.Clamped()
	return colorful.Color{R: cc.R, G: cc.G, B: cc.B}
}

func clampUnit(v, nan float64) float64 {
	switch {
	case math.IsNaN(v):
		return nan
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// FormatFloat renders v with at most three decimals and no trailing zeros.
func FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	s := fmt.Sprintf("%.3f", v)
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
