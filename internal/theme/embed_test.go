package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmbeddedTheme_Default(t *testing.T) {
	css, found := GetEmbeddedTheme("default")
	require.True(t, found, "default theme should be found")
	assert.Contains(t, css, `@import "_base.css"`)
	assert.Contains(t, css, ".osd-box")
	// Follows the Adwaita palette
	assert.Contains(t, css, "@window_bg_color")
	assert.Contains(t, css, "@accent_bg_color")
}

func TestGetEmbeddedTheme_Minimal(t *testing.T) {
	css, found := GetEmbeddedTheme("minimal")
	require.True(t, found)
	assert.Contains(t, css, ".osd-box")
	assert.Contains(t, css, "box-shadow: none")
}

func TestGetEmbeddedTheme_Catppuccin(t *testing.T) {
	css, found := GetEmbeddedTheme("catppuccin")
	require.True(t, found)
	assert.Contains(t, css, "@define-color ctp_base")
	assert.Contains(t, css, "@define-color ctp_text")
	assert.Contains(t, css, "window.light .osd-box")
}

func TestGetEmbeddedTheme_NotFound(t *testing.T) {
	for _, name := range []string{"nonexistent", "", "_base"} {
		css, found := GetEmbeddedTheme(name)
		assert.False(t, found, name)
		assert.Empty(t, css)
	}
}

func TestGetEmbeddedPartial(t *testing.T) {
	for _, name := range []string{"_base.css", "_base", "base"} {
		t.Run(name, func(t *testing.T) {
			css, found := GetEmbeddedPartial(name)
			require.True(t, found)
			assert.Contains(t, css, "window.osd-window")
		})
	}

	css, found := GetEmbeddedPartial("_nonexistent.css")
	assert.False(t, found)
	assert.Empty(t, css)
}

func TestListEmbeddedThemes(t *testing.T) {
	themes := ListEmbeddedThemes()
	assert.ElementsMatch(t, BundledThemes, themes)
	for _, name := range themes {
		assert.False(t, strings.HasPrefix(name, "_"), "partial listed: %s", name)
	}
}

func TestIsEmbeddedTheme(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"default", true},
		{"minimal", true},
		{"catppuccin", true},
		{"nonexistent", false},
		{"_base", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEmbeddedTheme(tt.name))
		})
	}
}

func TestBundledThemes_HaveRequiredClasses(t *testing.T) {
	requiredClasses := []string{
		"window.osd-window",
		".osd-root",
		".osd-box",
		".osd-icon",
		".osd-label",
		"levelbar.osd-level",
		".osd-numeric",
	}

	for _, themeName := range BundledThemes {
		t.Run(themeName, func(t *testing.T) {
			css, found := GetEmbeddedTheme(themeName)
			require.True(t, found)
			css = ProcessImports(css, "", nil)

			for _, class := range requiredClasses {
				assert.Contains(t, css, class, "theme %s should style %s", themeName, class)
			}
		})
	}
}

func TestBundledThemes_ValidCSS(t *testing.T) {
	names := append([]string{"_base"}, BundledThemes...)
	for _, themeName := range names {
		t.Run(themeName, func(t *testing.T) {
			css, found := readEmbedded(themeName + ".css")
			require.True(t, found)

			assert.Equal(t, strings.Count(css, "{"), strings.Count(css, "}"),
				"theme %s should have balanced braces", themeName)
			assert.NotContains(t, css, "{{")
			assert.NotContains(t, css, "}}")
		})
	}
}
