package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/osdui/internal/dbus"
	"github.com/jmylchreest/osdui/internal/store"
)

var statusOpts struct {
	json bool
}

// statusReport combines the daemon status with the shared state file.
type statusReport struct {
	Running        bool   `json:"running"`
	Version        string `json:"version,omitempty"`
	Enabled        bool   `json:"enabled"`
	Monitors       int    `json:"monitors"`
	Effect         string `json:"effect,omitempty"`
	Theme          string `json:"theme,omitempty"`
	ClipDisabled   bool   `json:"clip_disabled"`
	ClipDisabledBy string `json:"clip_disabled_by,omitempty"`
	LastShowAt     int64  `json:"last_show_at,omitempty"`
	LastShowID     string `json:"last_show_id,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the daemon and shared state",
	Long: `Show whether osduid is running, the effect and theme it uses, and
the shared state in ~/.local/share/osdui/state.json: who disabled clipped
redraws for the blur effect and when the last OSD was shown.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.json, "json", false, "Output JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	var report statusReport

	err := withClient(func(ctx context.Context, c *dbus.Client) error {
		running, err := c.Running()
		if err != nil || !running {
			return err
		}
		report.Running = true

		st, err := c.Status(ctx)
		if err != nil {
			return err
		}
		report.Version = st.Version
		report.Enabled = st.Enabled
		report.Monitors = st.Monitors
		report.Effect = st.Effect
		report.Theme = st.Theme
		return nil
	})
	if err != nil {
		logger.Warn("failed to query osduid", "error", err)
	}

	state, err := store.LoadSharedState(store.StateFilePath())
	if err != nil {
		logger.Warn("failed to load state", "error", err)
	} else {
		report.ClipDisabled = state.ClipDisabled
		report.ClipDisabledBy = state.ClipDisabledBy
		report.LastShowAt = state.LastShowAt
		report.LastShowID = state.LastShowID
	}

	out := cmd.OutOrStdout()
	if statusOpts.json {
		return json.NewEncoder(out).Encode(report)
	}

	if !report.Running {
		fmt.Fprintln(out, "osduid: not running")
	} else {
		fmt.Fprintf(out, "osduid: running (version %s)\n", report.Version)
		fmt.Fprintf(out, "  Enabled: %t\n", report.Enabled)
		fmt.Fprintf(out, "  Monitors: %d\n", report.Monitors)
		fmt.Fprintf(out, "  Effect: %s\n", report.Effect)
		fmt.Fprintf(out, "  Theme: %s\n", report.Theme)
	}

	if report.ClipDisabled {
		fmt.Fprintf(out, "Clipped redraws: disabled by %s\n", report.ClipDisabledBy)
	} else {
		fmt.Fprintln(out, "Clipped redraws: enabled")
	}
	if report.LastShowAt > 0 {
		fmt.Fprintf(out, "Last OSD: %s (%s)\n", formatShowTime(report.LastShowAt), report.LastShowID)
	}
	return nil
}

// formatShowTime formats a unix timestamp as a human-readable relative time.
func formatShowTime(timestamp int64) string {
	return humanize.Time(time.Unix(timestamp, 0))
}
