package ring

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter persists rendered rings to a fixed path.
// Writes go to a temporary file that is renamed into place, so a failed write
// leaves the previous image untouched.
type FileWriter struct {
	path string
}

// NewFileWriter creates a writer for path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Path returns the destination path.
func (w *FileWriter) Path() string {
	return w.path
}

// Write replaces the file with svg.
func (w *FileWriter) Write(svg string) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create ring directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ring-*.svg")
	if err != nil {
		return fmt.Errorf("failed to create temp ring file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(svg); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write ring file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close ring file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set ring file mode: %w", err)
	}

	if err := os.Rename(tmpPath, w.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace ring file: %w", err)
	}
	return nil
}
