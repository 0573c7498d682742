package style

import (
	"github.com/jmylchreest/osdui/internal/config"
	"github.com/jmylchreest/osdui/internal/model"
)

// ShadowTier is the box-shadow profile of the OSD.
type ShadowTier int

const (
	ShadowNone ShadowTier = iota
	ShadowLight
	ShadowMedium
	ShadowHeavy
)

func (t ShadowTier) String() string {
	switch t {
	case ShadowLight:
		return "light"
	case ShadowMedium:
		return "medium"
	case ShadowHeavy:
		return "heavy"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ShadowTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Shadow is a tier and the color it is drawn in.
type Shadow struct {
	Tier  ShadowTier `json:"tier" yaml:"tier"`
	Color model.RGBA `json:"color" yaml:"color"`
}

// ShadowFor picks the shadow tier. Radii inside the size-dependent threshold
// get the light shadow on a plain box and the medium one over an effect;
// radii beyond it get the heavy shadow. Dynamic blur never has a shadow.
func ShadowFor(enabled bool, bradius, internalSize float64, effect config.BgEffect) ShadowTier {
	if !enabled || effect == config.EffectDynamicBlur {
		return ShadowNone
	}
	threshold := 75 + 0.25*internalSize
	if bradius > -threshold && bradius < threshold {
		if effect == config.EffectNone {
			return ShadowLight
		}
		return ShadowMedium
	}
	return ShadowHeavy
}

// CSS returns the box-shadow value.
func (s Shadow) CSS() string {
	c := s.Color.CSS()
	switch s.Tier {
	case ShadowLight:
		return "0 1px 8px " + c
	case ShadowMedium:
		return "0 1px 6px -12px " + c
	case ShadowHeavy:
		return "0 1px 8px 2px " + c
	default:
		return "none"
	}
}
