package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFont(t *testing.T) {
	tests := []struct {
		desc string
		want Font
	}{
		{"Cantarell 11", Font{Family: "Cantarell", Size: 11, Weight: 400, Style: "normal", Stretch: "normal"}},
		{"DejaVu Sans Bold Italic 14", Font{Family: "DejaVu Sans", Size: 14, Weight: 700, Style: "italic", Stretch: "normal"}},
		{"Noto Sans Semi-Condensed Light 10", Font{Family: "Noto Sans", Size: 10, Weight: 300, Style: "normal", Stretch: "semi-condensed"}},
		{"Monospace 16px", Font{Family: "Monospace", Size: 12, Weight: 400, Style: "normal", Stretch: "normal"}},
		{"Fira Code, Monospace 9", Font{Family: "Fira Code, Monospace", Size: 9, Weight: 400, Style: "normal", Stretch: "normal"}},
		{"Inter Oblique Heavy", Font{Family: "Inter", Weight: 900, Style: "oblique", Stretch: "normal"}},
		{"Sans", Font{Family: "Sans", Weight: 400, Style: "normal", Stretch: "normal"}},
		{"  ", Font{Weight: 400, Style: "normal", Stretch: "normal"}},
		{"Serif NaN", Font{Family: "Serif NaN", Weight: 400, Style: "normal", Stretch: "normal"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFont(tt.desc))
		})
	}
}

func TestResolveFont(t *testing.T) {
	t.Run("no font uses default family and base size", func(t *testing.T) {
		f := ResolveFont("", "Cantarell 11", 44)
		assert.Equal(t, "Cantarell", f.Family)
		assert.InDelta(t, 24.0, f.Size, 1e-9)
	})

	t.Run("configured size scales", func(t *testing.T) {
		f := ResolveFont("Inter Bold 11", "Cantarell 11", 44)
		assert.Equal(t, "Inter", f.Family)
		assert.Equal(t, 700, f.Weight)
		assert.InDelta(t, 22.0, f.Size, 1e-9)
	})

	t.Run("size only keeps default family", func(t *testing.T) {
		f := ResolveFont("16", "Cantarell 11", 44)
		assert.Equal(t, "Cantarell", f.Family)
		assert.InDelta(t, 32.0, f.Size, 1e-9)
	})

	t.Run("nothing configured", func(t *testing.T) {
		f := ResolveFont("", "", 22)
		assert.Empty(t, f.Family)
		assert.InDelta(t, 12.0, f.Size, 1e-9)
	})
}
