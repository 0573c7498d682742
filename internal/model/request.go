package model

import (
	"crypto/rand"
	"math"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind identifies which optional components an OSD carries.
type Kind string

const (
	// KindAll has both a label and a level.
	KindAll Kind = "all"
	// KindNoLabel has a level but no label.
	KindNoLabel Kind = "nolabel"
	// KindNoLevel has a label but no level.
	KindNoLevel Kind = "nolevel"
	// KindIconOnly has neither label nor level.
	KindIconOnly Kind = "icon"
)

// ShowRequest describes one OSD show event.
type ShowRequest struct {
	ID       string  `json:"id"`
	Icon     string  `json:"icon"`
	Label    string  `json:"label,omitempty"`
	Level    float64 `json:"level,omitempty"` // percent; may exceed 100 for over-amplification
	HasLabel bool    `json:"has_label"`
	HasLevel bool    `json:"has_level"`
}

// NewShowRequest creates a request with a fresh ULID.
func NewShowRequest(icon string) ShowRequest {
	return ShowRequest{
		ID:   ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		Icon: icon,
	}
}

// WithLabel returns a copy carrying the given label.
func (r ShowRequest) WithLabel(label string) ShowRequest {
	r.Label = label
	r.HasLabel = label != ""
	return r
}

// WithLevel returns a copy carrying the given level percent.
func (r ShowRequest) WithLevel(level float64) ShowRequest {
	r.Level = level
	r.HasLevel = true
	return r
}

// Kind derives the OSD kind from which components are present.
func (r ShowRequest) Kind() Kind {
	switch {
	case r.HasLabel && r.HasLevel:
		return KindAll
	case r.HasLevel:
		return KindNoLabel
	case r.HasLabel:
		return KindNoLevel
	default:
		return KindIconOnly
	}
}

// DisplayedLevel is the integer percent shown for level. The numeric label
// and the progress ring both draw this value. NaN and negative levels show 0.
func DisplayedLevel(level float64) int {
	if math.IsNaN(level) || level <= 0 {
		return 0
	}
	if level >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(level))
}
