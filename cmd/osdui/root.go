// Package main provides the osdui CLI: it controls a running osduid over
// D-Bus and inspects the styles and ring images osduid would produce.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/osdui/internal/config"
	"github.com/jmylchreest/osdui/internal/dbus"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	globalOpts struct {
		verbose    bool
		configPath string
		timeout    time.Duration
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "osdui",
	Short: "Per-monitor on-screen display for Linux desktops",
	Long: `osdui controls osduid, the per-monitor on-screen display daemon.

Volume, brightness and similar levels are shown as an OSD on every
monitor, styled from ~/.config/osdui/osdui.toml and a CSS theme.

Running osdui without a subcommand shows the sample OSD.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to settings file (default: ~/.config/osdui/osdui.toml)")
	rootCmd.PersistentFlags().DurationVar(&globalOpts.timeout, "timeout", dbus.DefaultCallTimeout,
		"Timeout for calls to osduid")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// loadSettings reads the settings file named by --config.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(globalOpts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// withClient connects to osduid and runs fn with a call timeout.
func withClient(fn func(ctx context.Context, c *dbus.Client) error) error {
	client, err := dbus.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), globalOpts.timeout)
	defer cancel()
	return fn(ctx, client)
}
