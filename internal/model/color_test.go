package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorFromTuple(t *testing.T) {
	tests := []struct {
		name  string
		tuple []float64
		want  RGBA
	}{
		{"rgb defaults alpha", []float64{1, 0.5, 0}, RGBA{R: 1, G: 0.5, B: 0, A: 1}},
		{"rgba", []float64{0, 0, 1, 0.25}, RGBA{B: 1, A: 0.25}},
		{"empty", nil, RGBA{A: 1}},
		{"clamped", []float64{2, -1, 0.5, 3}, RGBA{R: 1, G: 0, B: 0.5, A: 1}},
		{"nan", []float64{math.NaN(), 0, 0, math.NaN()}, RGBA{A: 1}},
		{"extra channels ignored", []float64{0, 0, 0, 0.5, 9}, RGBA{A: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorFromTuple(tt.tuple))
		})
	}
}

func TestRGBA_Conversions(t *testing.T) {
	c := ColorFromTuple([]float64{1, 0.5, 0, 0.4})

	r, g, b := c.RGB255()
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(128), g)
	assert.Equal(t, uint8(0), b)
	assert.Equal(t, "#ff8000", c.Hex())
	assert.Equal(t, "rgba(255,128,0,0.4)", c.CSS())
	assert.Equal(t, "rgba(255,128,0,1)", c.WithAlpha(1).CSS())
}

func TestRGBA_Blend(t *testing.T) {
	black := RGBA{A: 0}
	white := RGBA{R: 1, G: 1, B: 1, A: 1}

	assert.Equal(t, black, black.Blend(white, 0))
	mid := black.Blend(white, 0.5)
	assert.InDelta(t, 0.5, mid.R, 1e-9)
	assert.InDelta(t, 0.5, mid.A, 1e-9)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0", FormatFloat(0))
	assert.Equal(t, "1.5", FormatFloat(1.5))
	assert.Equal(t, "8.16", FormatFloat(8.16))
	assert.Equal(t, "0.333", FormatFloat(1.0/3))
	assert.Equal(t, "0", FormatFloat(-0.0001))
	assert.Equal(t, "0", FormatFloat(math.NaN()))
	assert.Equal(t, "120", FormatFloat(120))
}
