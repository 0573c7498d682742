// Package store persists the state shared between osduid, osdui and other
// cooperating tools.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jmylchreest/osdui/internal/config"
	"github.com/jmylchreest/osdui/internal/ring"
)

// DaemonOwnerPrefix marks clip-flag owners that are osduid processes.
const DaemonOwnerPrefix = "osduid:"

// StateFilePath returns the path to the state file.
func StateFilePath() string {
	return filepath.Join(config.DataPath(), "state.json")
}

// ClipTransition records details about a clip flag change.
type ClipTransition struct {
	Enabled   bool   `json:"enabled"`
	Owner     string `json:"owner,omitempty"` // e.g. "osduid:1234", "blur-helper"
	Timestamp int64  `json:"timestamp"`
}

// SharedState contains state that is shared between osdui, osduid and
// anything else that cooperates on the clipped-redraws flag.
// This is persisted to ~/.local/share/osdui/state.json
type SharedState struct {
	// Clipped redraws disabled for background blur
	ClipDisabled   bool   `json:"clip_disabled"`
	ClipDisabledBy string `json:"clip_disabled_by,omitempty"`

	ClipLastTransition *ClipTransition `json:"clip_last_transition,omitempty"`

	// Last known OSD box used for the progress ring
	RingBox *ring.Box `json:"ring_box,omitempty"`

	// Statistics (optional, for osdui status)
	LastShowAt int64  `json:"last_show_at,omitempty"`
	LastShowID string `json:"last_show_id,omitempty"`

	// Version for compatibility
	SchemaVersion int `json:"schema_version"` // Currently 1
}

const (
	// CurrentSchemaVersion is the current version of the state schema.
	CurrentSchemaVersion = 1
)

// stateFileMutex protects concurrent access to the state file.
var stateFileMutex sync.RWMutex

// DefaultSharedState returns a new SharedState with default values.
func DefaultSharedState() *SharedState {
	return &SharedState{
		SchemaVersion: CurrentSchemaVersion,
	}
}

// LoadSharedState loads the shared state from path, or the default path if
// empty. If the file doesn't exist, returns a default state.
func LoadSharedState(path string) (*SharedState, error) {
	stateFileMutex.RLock()
	defer stateFileMutex.RUnlock()
	return loadLocked(path)
}

func loadLocked(path string) (*SharedState, error) {
	if path == "" {
		path = StateFilePath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSharedState(), nil
		}
		return nil, err
	}

	var state SharedState
	if err := json.Unmarshal(data, &state); err != nil {
		// If the file is corrupted, return default state
		return DefaultSharedState(), nil
	}

	// Ensure schema version is set
	if state.SchemaVersion == 0 {
		state.SchemaVersion = CurrentSchemaVersion
	}

	return &state, nil
}

// SaveSharedState saves the shared state to path, or the default path if empty.
func SaveSharedState(path string, state *SharedState) error {
	stateFileMutex.Lock()
	defer stateFileMutex.Unlock()
	return saveLocked(path, state)
}

func saveLocked(path string, state *SharedState) error {
	if path == "" {
		path = StateFilePath()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	// Ensure schema version is set
	if state.SchemaVersion == 0 {
		state.SchemaVersion = CurrentSchemaVersion
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

// SetClip updates the clip flag with transition tracking.
func (s *SharedState) SetClip(enabled bool, owner string) {
	s.ClipDisabled = enabled
	if enabled {
		s.ClipDisabledBy = owner
	} else {
		s.ClipDisabledBy = ""
	}

	s.ClipLastTransition = &ClipTransition{
		Enabled:   enabled,
		Owner:     owner,
		Timestamp: time.Now().Unix(),
	}
}

// UpdateLastShow records an OSD show.
func (s *SharedState) UpdateLastShow(id string) {
	s.LastShowAt = time.Now().Unix()
	s.LastShowID = id
}

// StateFile is read-modify-write access to the state file on behalf of one
// owner. It implements the controller's clip flag and ring box store.
type StateFile struct {
	path  string
	owner string
}

// NewStateFile creates a StateFile for path (default path if empty).
func NewStateFile(path, owner string) *StateFile {
	if path == "" {
		path = StateFilePath()
	}
	return &StateFile{path: path, owner: owner}
}

// DaemonOwner returns the owner name of the current daemon process.
func DaemonOwner() string {
	return fmt.Sprintf("%s%d", DaemonOwnerPrefix, os.Getpid())
}

// Path returns the state file path.
func (f *StateFile) Path() string {
	return f.path
}

// Load reads the current state.
func (f *StateFile) Load() (*SharedState, error) {
	return LoadSharedState(f.path)
}

// Update applies fn to the stored state and saves it.
func (f *StateFile) Update(fn func(*SharedState)) error {
	stateFileMutex.Lock()
	defer stateFileMutex.Unlock()

	state, err := loadLocked(f.path)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	fn(state)
	if err := saveLocked(f.path, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// IsSet reports whether clipped redraws are currently disabled by anyone.
func (f *StateFile) IsSet() bool {
	state, err := f.Load()
	if err != nil {
		return false
	}
	return state.ClipDisabled
}

// Set enables or clears the clip flag as this owner. Clearing leaves a flag
// owned by someone else alone.
func (f *StateFile) Set(on bool) error {
	return f.Update(func(s *SharedState) {
		if !on && s.ClipDisabled && s.ClipDisabledBy != f.owner {
			return
		}
		s.SetClip(on, f.owner)
	})
}

// processAlive reports whether a process with pid is running.
var processAlive = func(pid int) bool {
	_, err := os.Stat(filepath.Join("/proc", strconv.Itoa(pid)))
	return err == nil
}

// staleDaemon reports whether owner names an osduid process other than self
// that is no longer running.
func staleDaemon(owner, self string) bool {
	if owner == self || !strings.HasPrefix(owner, DaemonOwnerPrefix) {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimPrefix(owner, DaemonOwnerPrefix))
	if err != nil || pid <= 0 {
		return true
	}
	return !processAlive(pid)
}

// ReleaseStale clears a clip flag left behind by a daemon that is no longer
// running. It reports whether anything was released.
func (f *StateFile) ReleaseStale() (bool, error) {
	released := false
	err := f.Update(func(s *SharedState) {
		if s.ClipDisabled && staleDaemon(s.ClipDisabledBy, f.owner) {
			s.SetClip(false, f.owner)
			released = true
		}
	})
	return released, err
}

// RingBox returns the last saved ring box, or the zero box.
func (f *StateFile) RingBox() ring.Box {
	state, err := f.Load()
	if err != nil || state.RingBox == nil {
		return ring.Box{}
	}
	return *state.RingBox
}

// SaveRingBox stores the ring box.
func (f *StateFile) SaveRingBox(b ring.Box) error {
	return f.Update(func(s *SharedState) {
		s.RingBox = &b
	})
}

// RecordShow stores the id and time of the latest OSD.
func (f *StateFile) RecordShow(id string) error {
	return f.Update(func(s *SharedState) {
		s.UpdateLastShow(id)
	})
}
