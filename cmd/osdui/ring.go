package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/osdui/internal/model"
	"github.com/jmylchreest/osdui/internal/osd"
	"github.com/jmylchreest/osdui/internal/ring"
	"github.com/jmylchreest/osdui/internal/style"
)

var ringOpts struct {
	width    float64
	height   float64
	output   string
	geometry bool
}

var ringCmd = &cobra.Command{
	Use:   "ring <percent>",
	Short: "Render the progress-ring image for a level",
	Long: `Render the progress-ring SVG osduid would draw behind an OSD of the
given box size, using the current settings. The SVG goes to stdout unless
--output is set; --geometry prints the computed ring geometry as JSON instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runRing,
}

func init() {
	rootCmd.AddCommand(ringCmd)

	ringCmd.Flags().Float64Var(&ringOpts.width, "width", 200, "Box width in pixels")
	ringCmd.Flags().Float64Var(&ringOpts.height, "height", 100, "Box height in pixels")
	ringCmd.Flags().StringVarP(&ringOpts.output, "output", "o", "", "Write the SVG to a file")
	ringCmd.Flags().BoolVar(&ringOpts.geometry, "geometry", false, "Print the ring geometry as JSON")
}

func runRing(cmd *cobra.Command, args []string) error {
	level, err := parseLevel(args[0])
	if err != nil {
		return err
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	box := ring.Box{Width: ringOpts.width, Height: ringOpts.height}
	if !box.Valid() {
		return fmt.Errorf("invalid box %gx%g", box.Width, box.Height)
	}

	d := style.ComputeOne(settings, model.Monitor{Width: 1920, Height: 1080, Primary: true})
	svg, g := ring.Render(level, box.Width, box.Height, osd.RingStyle(settings, d, box))

	if ringOpts.geometry {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	if ringOpts.output == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), svg)
		return err
	}
	if err := ring.NewFileWriter(ringOpts.output).Write(svg); err != nil {
		return err
	}
	logger.Debug("ring written", "path", ringOpts.output, "level", g.Level)
	fmt.Fprintf(os.Stderr, "Wrote %s (level %d%%)\n", ringOpts.output, g.Level)
	return nil
}
