package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/osdui/internal/model"
	"github.com/jmylchreest/osdui/internal/style"
)

var styleOpts struct {
	monitors []string
	format   string
	css      bool
}

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Print the computed OSD style per monitor",
	Long: `Print the style osduid computes from the current settings for each
monitor. Monitors are given as WIDTHxHEIGHT[:CONNECTOR], e.g.

  osdui style -m 2560x1440:DP-1 -m 1920x1200:eDP-1

Formats: text (default), json, yaml. --css prints the generated CSS instead.`,
	Args: cobra.NoArgs,
	RunE: runStyle,
}

func init() {
	rootCmd.AddCommand(styleCmd)

	styleCmd.Flags().StringSliceVarP(&styleOpts.monitors, "monitor", "m", []string{"1920x1080:eDP-1"},
		"Monitor WIDTHxHEIGHT[:CONNECTOR] (repeatable)")
	styleCmd.Flags().StringVarP(&styleOpts.format, "format", "f", "text",
		"Output format (text, json, yaml)")
	styleCmd.Flags().BoolVar(&styleOpts.css, "css", false,
		"Print the generated CSS")
}

func runStyle(cmd *cobra.Command, args []string) error {
	monitors, err := parseMonitors(styleOpts.monitors)
	if err != nil {
		return err
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	descriptors := style.Compute(settings, monitors)
	out := cmd.OutOrStdout()

	if styleOpts.css {
		for _, d := range descriptors {
			fmt.Fprintf(out, "/* monitor %d */\n%s\n", d.Monitor.Index,
				d.CSS(fmt.Sprintf("window.osd-monitor-%d .%s", d.Monitor.Index, style.ClassBox)))
		}
		return nil
	}

	switch styleOpts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(descriptors)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer func() { _ = enc.Close() }()
		return enc.Encode(descriptors)
	case "text":
		for i, d := range descriptors {
			if i > 0 {
				fmt.Fprintln(out)
			}
			writeStyleText(out, d)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (valid: text, json, yaml)", styleOpts.format)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(14)
)

// swatch renders a color sample followed by its CSS value.
func swatch(c model.RGBA) string {
	block := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("   ")
	return block + " " + c.CSS()
}

func writeStyleText(w io.Writer, d style.Descriptor) {
	m := d.Monitor
	title := fmt.Sprintf("Monitor %d  %dx%d", m.Index, m.Width, m.Height)
	if m.Connector != "" {
		title += "  " + m.Connector
	}
	if m.Primary {
		title += "  (primary)"
	}
	fmt.Fprintln(w, headerStyle.Render(title))

	row := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+value)
	}
	row("size", model.FormatFloat(d.Size))
	row("foreground", swatch(d.Foreground))
	row("label", swatch(d.LabelColor))
	row("level", swatch(d.LevelColor))
	row("track", swatch(d.TrackColor))
	if d.HasBackgroundColor {
		row("background", swatch(d.BackgroundColor))
	}
	row("effect", string(d.Effect))
	row("icon", fmt.Sprintf("%dpx, margin %s", d.IconSize, model.FormatFloat(d.IconMargin)))
	row("padding", fmt.Sprintf("%s x %s, left %s",
		model.FormatFloat(d.VPadding), model.FormatFloat(d.HPadding), model.FormatFloat(d.LeftPadding)))
	row("level bar", fmt.Sprintf("%dpx thick, min width %dpx", d.LevelThickness, d.LevelMinWidth))
	if d.Border {
		row("border", fmt.Sprintf("%dpx ", d.BorderWidth)+swatch(d.BorderColor))
	}
	row("shadow", d.Shadow.Tier.String())
	row("radii", model.FormatFloat(d.Radii[0])+" "+model.FormatFloat(d.Radii[1]))

	var flags []string
	if d.Blur {
		flags = append(flags, "blur")
	}
	if d.Rotate {
		flags = append(flags, "rotate")
	}
	if d.SquareCircle {
		flags = append(flags, "square")
	}
	if len(flags) > 0 {
		row("flags", strings.Join(flags, ", "))
	}
	if d.Font.Family != "" {
		row("font", fmt.Sprintf("%s %d %s", d.Font.Family, d.Font.Weight, model.FormatFloat(d.Font.Size)))
	}
}
