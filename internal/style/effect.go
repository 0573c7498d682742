package style

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/jmylchreest/osdui/internal/config"
	"github.com/jmylchreest/osdui/internal/model"
)

// applyEffect sets the fields owned by the active background effect. Fields
// of every other effect are left at their zero value.
func applyEffect(d *Descriptor, s *config.Settings) {
	bg := s.Background()

	d.HasBackgroundColor = false
	d.BackgroundColor = model.RGBA{}
	d.BackgroundImage = ""
	d.Blur = false

	switch s.BgEffect {
	case config.EffectGradient:
		d.BackgroundImage = gradientCSS(s.GradientDirection, bg, s.GradientEnd())

	case config.EffectDynamicBlur:
		d.Blur = true
		d.Shadow.Tier = ShadowNone

	case config.EffectGlass:
		d.setBackgroundColor(bg)
		d.BackgroundImage = glassCSS

	case config.EffectWoodRaw:
		d.BackgroundImage = woodCSS(false)

	case config.EffectWoodPolished:
		d.BackgroundImage = woodCSS(true)

	case config.EffectBackgroundImage:
		if s.BackgroundImage == "" {
			d.setBackgroundColor(bg)
			return
		}
		d.BackgroundImage = ImageURL(s.BackgroundImage)

	default:
		// none and progress-ring; the ring image is bound at show time
		d.setBackgroundColor(bg)
	}
}

func (d *Descriptor) setBackgroundColor(c model.RGBA) {
	d.HasBackgroundColor = true
	d.BackgroundColor = c
}

// ImageURL returns a CSS url() for a local file path.
func ImageURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: path}
	return fmt.Sprintf("url(%q)", u.String())
}

func gradientCSS(dir config.GradientDirection, start, end model.RGBA) string {
	switch dir {
	case config.GradientVertical:
		return fmt.Sprintf("linear-gradient(to bottom, %s, %s)", start.CSS(), end.CSS())
	case config.GradientRadial:
		return fmt.Sprintf("radial-gradient(circle, %s, %s)", start.CSS(), end.CSS())
	default:
		return fmt.Sprintf("linear-gradient(to right, %s, %s)", start.CSS(), end.CSS())
	}
}

const glassCSS = "linear-gradient(135deg, rgba(255,255,255,0.35), rgba(255,255,255,0.08) 45%, rgba(255,255,255,0.02) 55%, rgba(255,255,255,0.18))"

var (
	woodLight = model.RGBA{R: 0.62, G: 0.42, B: 0.24, A: 1}
	woodDark  = model.RGBA{R: 0.45, G: 0.28, B: 0.14, A: 1}
)

func woodCSS(polished bool) string {
	mid := woodLight.Blend(woodDark, 0.5)
	grain := fmt.Sprintf("repeating-linear-gradient(92deg, %s, %s 6px, %s 9px, %s 14px)",
		woodLight.CSS(), mid.CSS(), woodDark.CSS(), woodLight.CSS())
	if !polished {
		return grain
	}
	return "linear-gradient(to bottom, rgba(255,255,255,0.25), rgba(255,255,255,0) 50%, rgba(0,0,0,0.15)), " + grain
}
