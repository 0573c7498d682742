package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, filepath.Join(dir, "minimal.css"), `.osd-box { opacity: 0.5; }`)
	writeCSS(t, filepath.Join(dir, "mine.css"), `@import "_colors.css"; .osd-box { color: red; }`)
	writeCSS(t, filepath.Join(dir, "_colors.css"), `@define-color fg red;`)

	tests := []struct {
		name     string
		theme    string
		wantName string
		origin   Origin
		contains string
		notFound bool
	}{
		{"empty is default", "", DefaultThemeName, OriginBundled, ".osd-box", false},
		{"user overrides bundled", "minimal", "minimal", OriginUser, "opacity: 0.5", false},
		{"user only", "mine", "mine", OriginUser, "@define-color fg red", false},
		{"bundled", "catppuccin", "catppuccin", OriginBundled, "ctp_base", false},
		{"unknown falls back", "nope", DefaultThemeName, OriginFallback, ".osd-box", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, origin, err := Resolve(dir, tt.theme)
			require.NotNil(t, th)
			assert.Equal(t, tt.wantName, th.Name)
			assert.Equal(t, tt.origin, origin)
			assert.Contains(t, th.CSS, tt.contains)
			assert.NotContains(t, th.CSS, "@import")
			if tt.notFound {
				assert.ErrorIs(t, err, ErrThemeNotFound)
				assert.True(t, th.IsDefault)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolve_NoUserDir(t *testing.T) {
	th, origin, err := Resolve("", "minimal")
	require.NoError(t, err)
	assert.Equal(t, OriginBundled, origin)
	assert.Empty(t, th.Path)
	assert.Nil(t, th.Files(), "bundled themes are not watched")
}

func TestResolve_UnreadableUserTheme(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "minimal.css"), 0o755))

	th, origin, err := Resolve(dir, "minimal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user theme minimal")
	assert.NotErrorIs(t, err, ErrThemeNotFound)
	assert.Equal(t, OriginBundled, origin)
	assert.Equal(t, "minimal", th.Name)
}
