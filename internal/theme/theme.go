package theme

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme represents a CSS theme with metadata.
type Theme struct {
	Name      string    // Theme name (without .css extension)
	Path      string    // Full path to the CSS file (empty for bundled themes)
	CSS       string    // The CSS content with imports inlined
	ModTime   time.Time // Newest modification time of the file and its imports
	IsDefault bool      // True if this is the embedded default theme
	Imports   []string  // Files inlined from disk, sorted
}

// NewTheme creates a new Theme by loading a CSS file.
// CSS @import statements are resolved and inlined.
func NewTheme(name, path string) (*Theme, error) {
	t := &Theme{Name: name, Path: path}
	if _, err := t.load(); err != nil {
		return nil, err
	}
	return t, nil
}

// load reads the file and its imports. It reports whether the CSS changed.
func (t *Theme) load() (bool, error) {
	css, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	seen := make(map[string]bool)
	processed := ProcessImports(string(css), filepath.Dir(t.Path), seen)

	imports := make([]string, 0, len(seen))
	for path := range seen {
		if _, err := os.Stat(path); err == nil {
			imports = append(imports, path)
		}
	}
	sort.Strings(imports)

	modTime, err := newestModTime(append([]string{t.Path}, imports...))
	if err != nil {
		return false, err
	}

	changed := processed != t.CSS
	t.CSS = processed
	t.Imports = imports
	t.ModTime = modTime
	return changed, nil
}

// Files returns the theme file followed by its imports.
func (t *Theme) Files() []string {
	if t.Path == "" {
		return nil
	}
	return append([]string{t.Path}, t.Imports...)
}

func newestModTime(paths []string) (time.Time, error) {
	var newest time.Time
	for i, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if i > 0 && os.IsNotExist(err) {
				continue
			}
			return time.Time{}, err
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	return newest, nil
}

// ProcessImports resolves and inlines @import statements in CSS.
// Imports are resolved relative to baseDir, falling back to bundled partials
// and themes. seen collects the resolved paths and prevents circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match // Keep original if parsing fails
		}
		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}

		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		importedCSS, err := os.ReadFile(fullPath)
		if err != nil {
			if embedded, found := embeddedImport(importPath); found {
				return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(embedded, "", seen)
			}
			return "/* import failed: " + importPath + " - " + err.Error() + " */"
		}

		processed := ProcessImports(string(importedCSS), filepath.Dir(fullPath), seen)
		return "/* imported: " + importPath + " */\n" + processed
	})
}

// embeddedImport finds a bundled partial (files starting with _) or theme
// for an import path.
func embeddedImport(importPath string) (string, bool) {
	baseName := filepath.Base(importPath)
	if strings.HasPrefix(baseName, "_") {
		if css, found := GetEmbeddedPartial(baseName); found {
			return css, true
		}
	}
	return GetEmbeddedTheme(strings.TrimSuffix(baseName, ".css"))
}

// Reload reloads the theme from disk when the file or one of its imports
// was modified. Returns true if the content changed.
func (t *Theme) Reload() (bool, error) {
	if t.Path == "" {
		return false, nil
	}

	modTime, err := newestModTime(t.Files())
	if err != nil {
		return false, err
	}
	if !modTime.After(t.ModTime) {
		return false, nil
	}
	return t.load()
}
