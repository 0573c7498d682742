package style

import (
	"math"
	"strconv"
	"strings"
)

// Font is a parsed font description.
type Font struct {
	Family  string  `json:"family" yaml:"family"`
	Size    float64 `json:"size" yaml:"size"` // points; 0 when unset
	Weight  int     `json:"weight" yaml:"weight"`
	Style   string  `json:"style" yaml:"style"`
	Stretch string  `json:"stretch" yaml:"stretch"`
}

var fontWeights = map[string]int{
	"thin":       100,
	"hairline":   100,
	"ultralight": 200,
	"extralight": 200,
	"light":      300,
	"semilight":  350,
	"demilight":  350,
	"book":       380,
	"regular":    400,
	"medium":     500,
	"semibold":   600,
	"demibold":   600,
	"bold":       700,
	"ultrabold":  800,
	"extrabold":  800,
	"heavy":      900,
	"black":      900,
	"ultraheavy": 1000,
	"ultrablack": 1000,
}

var fontStyles = map[string]string{
	"italic":  "italic",
	"oblique": "oblique",
	"roman":   "normal",
}

var fontStretches = map[string]string{
	"ultra-condensed": "ultra-condensed",
	"extra-condensed": "extra-condensed",
	"condensed":       "condensed",
	"semi-condensed":  "semi-condensed",
	"semi-expanded":   "semi-expanded",
	"expanded":        "expanded",
	"extra-expanded":  "extra-expanded",
	"ultra-expanded":  "ultra-expanded",
}

// ParseFont parses a Pango-style font description such as
// "Cantarell Bold Italic 11" or "Noto Sans, Sans Condensed 12".
// Options and size are read from the end; the rest is the family list.
func ParseFont(desc string) Font {
	f := Font{Weight: 400, Style: "normal", Stretch: "normal"}

	words := strings.Fields(desc)
	if len(words) == 0 {
		return f
	}

	if size, ok := parseFontSize(words[len(words)-1]); ok {
		f.Size = size
		words = words[:len(words)-1]
	}

	for len(words) > 1 {
		w := strings.ToLower(strings.TrimSuffix(words[len(words)-1], ","))
		if weight, ok := fontWeights[w]; ok {
			f.Weight = weight
		} else if style, ok := fontStyles[w]; ok {
			f.Style = style
		} else if stretch, ok := fontStretches[w]; ok {
			f.Stretch = stretch
		} else if w != "normal" && w != "small-caps" {
			break
		}
		words = words[:len(words)-1]
	}

	f.Family = strings.TrimRight(strings.Join(words, " "), ", ")
	return f
}

func parseFontSize(word string) (float64, bool) {
	px := strings.HasSuffix(word, "px")
	v, err := strconv.ParseFloat(strings.TrimSuffix(word, "px"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	if px {
		// 96dpi
		v = v * 72 / 96
	}
	return v, true
}
