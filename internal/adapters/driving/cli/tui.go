package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/geosearch/internal/adapters/driving/tui"
	"github.com/custodia-labs/geosearch/internal/core/ports/driving"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	SettingsService driving.SettingsService
	NewControl      tui.ControlFactory

	// ConfigPath is watched so edits rebuild the control.
	ConfigPath string

	// LogPath receives log output while the TUI owns the screen.
	// Empty discards it.
	LogPath string
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for geosearch.

The TUI shows a map panel with the search control over it. Typing shows
live suggestions when autocomplete is enabled; enter searches and drops a
marker on the best match.

Controls:
  ctrl+f     - Open or close the search box
  Enter      - Search
  ↑/↓        - Move through suggestions
  Esc        - Hide suggestions / cancel
  ctrl+x     - Clear the box
  F1 / F2    - Help / settings
  ctrl+c     - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if tuiConfig == nil {
		return errors.New("tui not configured")
	}

	restore, err := redirectLogs(tuiConfig.LogPath)
	if err != nil {
		return err
	}
	defer restore()

	ports := tui.NewPorts(tuiConfig.SettingsService, tuiConfig.NewControl)
	ports.ConfigPath = tuiConfig.ConfigPath

	// Create the TUI app
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Set up context from command
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// redirectLogs keeps log lines off the screen while the TUI runs.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }, nil
	}

	f, err := logger.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
