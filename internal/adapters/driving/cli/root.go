// Package cli provides the command-line interface for geosearch.
// It implements a driving adapter: commands call core services through
// driving ports that are wired in by the entrypoint.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/geosearch/internal/core/ports/driving"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// version is set at build time via -ldflags or SetVersion.
var version = "dev"

// Global flag values.
var (
	verbose   bool
	configDir string
)

// Services used by commands. They are set by the bootstrap hook.
var (
	settingsService driving.SettingsService
	lookupService   driving.LookupService
)

// Options carries the global flag values to the bootstrap hook.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// BootstrapFunc wires services once the global flags are parsed.
type BootstrapFunc func(opts Options) error

var bootstrap BootstrapFunc

var rootCmd = &cobra.Command{
	Use:   "geosearch",
	Short: "Geographic search from the terminal",
	Long: `geosearch resolves place names and addresses to coordinates.

Lookups go through a configurable provider: the OpenStreetMap Nominatim
service or an offline Geonames gazetteer. Use the TUI for an interactive
map with live suggestions, or serve lookups to AI assistants over MCP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if bootstrap == nil {
			return nil
		}
		return bootstrap(Options{ConfigDir: configDir, Verbose: verbose})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.geosearch)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap sets the hook that wires services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetSettingsService sets the settings service used by commands.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetLookupService sets the lookup service used by commands.
func SetLookupService(s driving.LookupService) {
	lookupService = s
}
