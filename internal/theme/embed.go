package theme

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

// EmbeddedThemes contains all bundled theme CSS files.
//
//go:embed themes/*.css
var EmbeddedThemes embed.FS

// DefaultThemeName is the name of the built-in default theme.
const DefaultThemeName = "default"

// BundledThemes lists all embedded theme names.
var BundledThemes = []string{"default", "minimal", "catppuccin"}

// GetEmbeddedTheme retrieves a bundled theme by name.
// Imports are NOT processed here - use LoadTheme instead.
func GetEmbeddedTheme(name string) (string, bool) {
	if name == "" || strings.HasPrefix(name, "_") {
		return "", false
	}
	return readEmbedded(name + ".css")
}

// GetEmbeddedPartial retrieves a bundled partial (files starting with _).
func GetEmbeddedPartial(name string) (string, bool) {
	if !strings.HasPrefix(name, "_") {
		name = "_" + name
	}
	if !strings.HasSuffix(name, ".css") {
		name += ".css"
	}
	return readEmbedded(name)
}

func readEmbedded(file string) (string, bool) {
	data, err := EmbeddedThemes.ReadFile(path.Join("themes", file))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedThemes returns names of all embedded themes.
// Partials are meant to be imported and are excluded.
func ListEmbeddedThemes() []string {
	matches, err := fs.Glob(EmbeddedThemes, "themes/*.css")
	if err != nil {
		return BundledThemes
	}

	var themes []string
	for _, match := range matches {
		name := strings.TrimSuffix(path.Base(match), ".css")
		if strings.HasPrefix(name, "_") {
			continue
		}
		themes = append(themes, name)
	}
	return themes
}

// IsEmbeddedTheme checks if a theme name is bundled.
func IsEmbeddedTheme(name string) bool {
	_, found := GetEmbeddedTheme(name)
	return found
}
