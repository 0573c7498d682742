// Package ring renders the progress-ring background of an OSD as SVG.
//
// The ring is a rounded rectangle stroked twice on the same path: a low-alpha
// track at the full "dummy" width and the progress arc at the narrower stroke
// width, revealed through a dash array equal to the path perimeter.
package ring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jmylchreest/osdui/internal/model"
)

// cornerCorrection approximates (8 - 2π): the length removed from a rectangle
// perimeter when its corners are rounded with radius 1.
const cornerCorrection = 1.716

// Box is a pixel size.
type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both dimensions are finite and positive.
func (b Box) Valid() bool {
	return finite(b.Width) && finite(b.Height) && b.Width > 0 && b.Height > 0
}

// Style holds the configuration-derived ring parameters.
type Style struct {
	Thickness    float64    // level thickness, percent of half the box height
	Gap          float64    // ring gap, percent of the space left inside the stroke
	Radius       float64    // configured corner radius in pixels
	Color        model.RGBA // progress arc color
	TrackAlpha   float64    // track opacity relative to Color.A, [0,1]
	SquareCircle bool       // square/circle mode always uses the saved box
	Saved        Box        // last known box size
}

// Geometry is the computed layout of one ring snapshot.
type Geometry struct {
	Level       int     `json:"level"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeWidth float64 `json:"stroke_width"`
	Gap         float64 `json:"gap"`
	DummyStroke float64 `json:"dummy_stroke"`
	Radius      float64 `json:"radius"`
	RectWidth   float64 `json:"rect_width"`
	RectHeight  float64 `json:"rect_height"`
	Perimeter   float64 `json:"perimeter"`
	DashOffset  float64 `json:"dash_offset"`
}

// Level truncates a level percent to an integer in [0,100]. NaN maps to 0.
func Level(percent float64) int {
	switch {
	case math.IsNaN(percent) || percent <= 0:
		return 0
	case percent >= 100:
		return 100
	default:
		return int(percent)
	}
}

// Compute derives the ring geometry for a level and box size.
// An unset box, or square/circle mode, substitutes st.Saved.
func Compute(level, width, height float64, st Style) Geometry {
	box := Box{Width: width, Height: height}
	if !box.Valid() || st.SquareCircle {
		box = st.Saved
	}
	if !box.Valid() {
		box = Box{}
	}

	g := Geometry{
		Level:  Level(level),
		Width:  box.Width,
		Height: box.Height,
	}

	thickness := percent(st.Thickness)
	gapRatio := percent(st.Gap)

	g.StrokeWidth = thickness * g.Height / 2
	g.Gap = gapRatio * (g.Height/2 - g.StrokeWidth)
	g.DummyStroke = 2*g.Gap + g.StrokeWidth

	g.RectWidth = math.Max(g.Width-g.DummyStroke, 0)
	g.RectHeight = math.Max(g.Height-g.DummyStroke, 0)

	radius := st.Radius
	if !finite(radius) {
		radius = 0
	}
	radius -= g.DummyStroke / 2
	radius = math.Min(radius, math.Min(g.RectWidth, g.RectHeight)/2)
	g.Radius = math.Max(radius, g.StrokeWidth/2)

	g.Perimeter = math.Max(2*g.RectHeight+2*g.RectWidth-cornerCorrection*g.Radius, 0)
	g.DashOffset = g.Perimeter * (1 - float64(g.Level)/100)

	return g
}

// Render returns the SVG document for a level and box size together with the
// geometry it was drawn from.
func Render(level, width, height float64, st Style) (string, Geometry) {
	g := Compute(level, width, height, st)

	color := st.Color.Clamped()
	trackAlpha := color.A * clampUnit(st.TrackAlpha)
	x := g.DummyStroke / 2
	f := model.FormatFloat

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		f(g.Width), f(g.Height), f(g.Width), f(g.Height))
	fmt.Fprintf(&b, `  <rect class="track" x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%s"/>`+"\n",
		f(x), f(x), f(g.RectWidth), f(g.RectHeight), f(g.Radius), f(g.Radius),
		color.Hex(), f(trackAlpha), f(g.DummyStroke))
	fmt.Fprintf(&b, `  <rect class="progress" x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%s" stroke-dasharray="%s" stroke-dashoffset="%s"/>`+"\n",
		f(x), f(x), f(g.RectWidth), f(g.RectHeight), f(g.Radius), f(g.Radius),
		color.Hex(), f(color.A), f(g.StrokeWidth), f(g.Perimeter), f(g.DashOffset))
	b.WriteString("</svg>\n")

	return b.String(), g
}

func percent(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return clampUnit(v / 100)
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
