package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change geosearch settings.

Settings are stored in config.toml inside the configuration directory
(~/.geosearch unless --config-dir is given). Keys are dotted, for example
control.zoom_level or provider.name.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Validate and store a single setting.

Examples:
  geosearch config set provider.name geonames
  geosearch config set provider.database_path ~/data/geonames.db
  geosearch config set autocomplete.enabled true
  geosearch config set control.message_hide_delay 5s`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	keys := settingsService.Keys()
	width := 0
	for _, k := range keys {
		if len(k) > width {
			width = len(k)
		}
	}

	for _, k := range keys {
		v, err := settingsService.Value(k)
		if err != nil {
			return fmt.Errorf("reading %s: %w", k, err)
		}
		cmd.Printf("%-*s = %s\n", width, k, v)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return err
	}

	stored, err := settingsService.Value(key)
	if err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", key, stored)
	return nil
}
