package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrThemeNotFound is returned when a named theme is neither a user theme
// nor bundled. The default theme is used in its place.
var ErrThemeNotFound = errors.New("theme not found")

// Origin tells where a resolved theme came from.
type Origin string

const (
	OriginUser     Origin = "user"
	OriginBundled  Origin = "bundled"
	OriginFallback Origin = "fallback"
)

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "osdui", "themes"), nil
}

// Resolve finds the theme called name, preferring <dir>/<name>.css over the
// bundled theme of the same name. The returned theme is never nil. The error
// explains why it is not the user's file or not the requested theme at all.
func Resolve(dir, name string) (*Theme, Origin, error) {
	if name == "" {
		name = DefaultThemeName
	}

	var userErr error
	if dir != "" {
		path := filepath.Join(dir, name+".css")
		if _, err := os.Stat(path); err == nil {
			t, err := NewTheme(name, path)
			if err == nil {
				return t, OriginUser, nil
			}
			userErr = fmt.Errorf("user theme %s: %w", name, err)
		}
	}

	if t, ok := bundled(name); ok {
		return t, OriginBundled, userErr
	}

	t, _ := bundled(DefaultThemeName)
	if name == DefaultThemeName {
		return t, OriginFallback, userErr
	}
	return t, OriginFallback, errors.Join(fmt.Errorf("%w: %s", ErrThemeNotFound, name), userErr)
}

func bundled(name string) (*Theme, bool) {
	css, ok := GetEmbeddedTheme(name)
	if !ok {
		return nil, false
	}
	return &Theme{
		Name:      name,
		CSS:       ProcessImports(css, "", nil),
		IsDefault: name == DefaultThemeName,
	}, true
}
