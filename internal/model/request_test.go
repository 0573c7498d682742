package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewShowRequest(t *testing.T) {
	a := NewShowRequest("audio-volume-high-symbolic")
	b := NewShowRequest("audio-volume-high-symbolic")

	assert.Len(t, a.ID, 26)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "audio-volume-high-symbolic", a.Icon)
	assert.Equal(t, KindIconOnly, a.Kind())
}

func TestShowRequest_Kind(t *testing.T) {
	base := NewShowRequest("icon")

	assert.Equal(t, KindAll, base.WithLabel("Volume").WithLevel(40).Kind())
	assert.Equal(t, KindNoLabel, base.WithLevel(40).Kind())
	assert.Equal(t, KindNoLevel, base.WithLabel("Caps Lock").Kind())
	assert.Equal(t, KindIconOnly, base.WithLabel("").Kind())
}

func TestDisplayedLevel(t *testing.T) {
	tests := []struct {
		level float64
		want  int
	}{
		{0, 0},
		{40, 40},
		{66.4, 66},
		{66.5, 67},
		{66.7, 67},
		{99.6, 100},
		{150.2, 150},
		{-5, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayedLevel(tt.level), "level %v", tt.level)
	}
}
