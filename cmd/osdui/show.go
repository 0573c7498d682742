package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/osdui/internal/dbus"
)

var levelOpts struct {
	icon    string
	label   string
	monitor int
	quiet   bool
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the sample OSD on every monitor",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Show the current time on every monitor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *dbus.Client) error {
			return c.ShowClock(ctx)
		})
	},
}

var levelCmd = &cobra.Command{
	Use:   "level <percent>",
	Short: "Show a level OSD",
	Long: `Show a level OSD, e.g. after changing the volume:

  osdui level 40 --icon audio-volume-medium-symbolic --label Speakers

Levels above 100 are shown as overdrive. A negative level shows the icon
and label without a level bar. The OSD id is printed unless --quiet.`,
	Args: cobra.ExactArgs(1),
	RunE: runLevel,
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the settings file and theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := withClient(func(ctx context.Context, c *dbus.Client) error {
			return c.Reload(ctx)
		})
		if err != nil {
			return err
		}
		fmt.Println("Reloaded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd, clockCmd, levelCmd, reloadCmd)

	levelCmd.Flags().StringVarP(&levelOpts.icon, "icon", "i", "",
		"Icon name (default: dialog-information-symbolic)")
	levelCmd.Flags().StringVarP(&levelOpts.label, "label", "l", "",
		"Label text")
	levelCmd.Flags().IntVarP(&levelOpts.monitor, "monitor", "m", dbus.AllMonitors,
		"Monitor index (default: all monitors)")
	levelCmd.Flags().BoolVarP(&levelOpts.quiet, "quiet", "q", false,
		"Do not print the OSD id")
}

func runShow(cmd *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *dbus.Client) error {
		return c.ShowSample(ctx)
	})
}

func runLevel(cmd *cobra.Command, args []string) error {
	level, err := parseLevel(args[0])
	if err != nil {
		return err
	}

	return withClient(func(ctx context.Context, c *dbus.Client) error {
		id, err := c.ShowLevel(ctx, levelOpts.icon, levelOpts.label, level, levelOpts.monitor)
		if err != nil {
			if errors.Is(err, dbus.ErrNotRunning) {
				return fmt.Errorf("%w: start osduid first", err)
			}
			return err
		}
		if !levelOpts.quiet {
			fmt.Println(id)
		}
		return nil
	})
}
