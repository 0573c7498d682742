package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/osdui/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the settings file",
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective settings as TOML",
	Long: `Print the effective settings: the file's values after validation and
sanitizing, with defaults for everything the file leaves out.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		data, err := settings.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadSettings(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", configPath())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath())
	},
}

func init() {
	configCmd.AddCommand(configPrintCmd, configValidateCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}
