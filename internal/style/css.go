package style

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/osdui/internal/model"
)

// Style classes of the OSD widgets.
const (
	ClassBox     = "osd-box"
	ClassIcon    = "osd-icon"
	ClassLabel   = "osd-label"
	ClassLevel   = "osd-level"
	ClassNumeric = "osd-numeric"
)

// CSS renders the descriptor as a GTK stylesheet scoped to selector.
// Show-time properties (trailing padding, corner radius, ring image and
// rotation) are rendered separately by ShowCSS.
func (d Descriptor) CSS(selector string) string {
	f := model.FormatFloat
	var b strings.Builder

	fmt.Fprintf(&b, "%s {\n", selector)
	fmt.Fprintf(&b, "  color: %s;\n", d.Foreground.CSS())
	writeFont(&b, d.Font)
	fmt.Fprintf(&b, "  padding: %spx %spx %spx %spx;\n", f(d.VPadding), f(d.HorizontalPadding(true)), f(d.VPadding), f(d.LeftPadding))
	fmt.Fprintf(&b, "  margin: 0;\n")
	fmt.Fprintf(&b, "  border-spacing: %spx;\n", f(d.Spacing))
	if d.Border {
		fmt.Fprintf(&b, "  border: %dpx solid %s;\n", d.BorderWidth, d.BorderColor.CSS())
	} else {
		fmt.Fprintf(&b, "  border: 0 solid transparent;\n")
	}
	fmt.Fprintf(&b, "  box-shadow: %s;\n", d.Shadow.CSS())
	if d.HasBackgroundColor {
		fmt.Fprintf(&b, "  background-color: %s;\n", d.BackgroundColor.CSS())
	} else {
		fmt.Fprintf(&b, "  background-color: transparent;\n")
	}
	if d.BackgroundImage != "" {
		fmt.Fprintf(&b, "  background-image: %s;\n", d.BackgroundImage)
		fmt.Fprintf(&b, "  background-repeat: no-repeat;\n")
		fmt.Fprintf(&b, "  background-size: cover;\n")
	} else {
		fmt.Fprintf(&b, "  background-image: none;\n")
	}
	b.WriteString("}\n")

	fmt.Fprintf(&b, "%s .%s {\n", selector, ClassIcon)
	fmt.Fprintf(&b, "  -gtk-icon-size: %dpx;\n", d.IconSize)
	fmt.Fprintf(&b, "  margin-right: %spx;\n", f(d.IconMargin))
	b.WriteString("}\n")

	fmt.Fprintf(&b, "%s .%s {\n", selector, ClassLabel)
	fmt.Fprintf(&b, "  color: %s;\n", d.LabelColor.CSS())
	b.WriteString("}\n")

	fmt.Fprintf(&b, "%s levelbar.%s {\n", selector, ClassLevel)
	fmt.Fprintf(&b, "  min-width: %dpx;\n", d.LevelMinWidth)
	b.WriteString("}\n")
	fmt.Fprintf(&b, "%s levelbar.%s trough {\n", selector, ClassLevel)
	fmt.Fprintf(&b, "  min-height: %dpx;\n", d.LevelThickness)
	fmt.Fprintf(&b, "  background-color: %s;\n", d.TrackColor.CSS())
	b.WriteString("}\n")
	fmt.Fprintf(&b, "%s levelbar.%s block.filled {\n", selector, ClassLevel)
	fmt.Fprintf(&b, "  min-height: %dpx;\n", d.LevelThickness)
	fmt.Fprintf(&b, "  background-color: %s;\n", d.LevelColor.CSS())
	b.WriteString("}\n")

	fmt.Fprintf(&b, "%s .%s {\n", selector, ClassNumeric)
	fmt.Fprintf(&b, "  font-size: %spt;\n", f(d.NumericFontSize))
	fmt.Fprintf(&b, "  font-weight: bold;\n")
	fmt.Fprintf(&b, "  min-width: %dpx;\n", d.NumericMinWidth)
	b.WriteString("}\n")

	return b.String()
}

func writeFont(b *strings.Builder, font Font) {
	if font.Family != "" {
		fmt.Fprintf(b, "  font-family: %q;\n", font.Family)
	}
	fmt.Fprintf(b, "  font-size: %spt;\n", model.FormatFloat(font.Size))
	fmt.Fprintf(b, "  font-weight: %d;\n", font.Weight)
	fmt.Fprintf(b, "  font-style: %s;\n", font.Style)
	fmt.Fprintf(b, "  font-stretch: %s;\n", font.Stretch)
}

// ShowState holds the properties computed when an OSD is shown.
type ShowState struct {
	PaddingRight    float64
	Radius          [2]float64 // pixels
	BackgroundImage string     // CSS image value, empty to keep the descriptor's
	ClearBackground bool       // drop any background image
	Rotation        float64    // degrees
}

// ShowCSS renders the show-time overrides scoped to selector.
func ShowCSS(selector string, st ShowState) string {
	f := model.FormatFloat
	var b strings.Builder

	fmt.Fprintf(&b, "%s {\n", selector)
	fmt.Fprintf(&b, "  padding-right: %spx;\n", f(st.PaddingRight))
	fmt.Fprintf(&b, "  border-radius: %spx %spx;\n", f(st.Radius[0]), f(st.Radius[1]))
	switch {
	case st.BackgroundImage != "":
		fmt.Fprintf(&b, "  background-image: %s;\n", st.BackgroundImage)
		fmt.Fprintf(&b, "  background-repeat: no-repeat;\n")
		fmt.Fprintf(&b, "  background-size: cover;\n")
	case st.ClearBackground:
		fmt.Fprintf(&b, "  background-image: none;\n")
	}
	if st.Rotation != 0 {
		fmt.Fprintf(&b, "  transform: rotate(%sdeg);\n", f(st.Rotation))
	}
	b.WriteString("}\n")

	if st.Rotation != 0 {
		fmt.Fprintf(&b, "%s .%s {\n", selector, ClassNumeric)
		fmt.Fprintf(&b, "  transform: rotate(%sdeg);\n", f(-st.Rotation))
		b.WriteString("}\n")
	}
	return b.String()
}
