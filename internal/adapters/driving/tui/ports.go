// Package tui provides an interactive terminal user interface for geosearch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"io"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/core/ports/driving"
)

// ControlEnv is what the TUI lends a control: the map it drives, the
// presenter that renders it and the loop it runs on.
type ControlEnv struct {
	Map       driven.MapWidget
	Presenter driven.Presenter
	Scheduler driven.Scheduler
}

// ControlFactory builds a search control for settings. The returned closer
// releases provider resources and may be nil.
type ControlFactory func(settings domain.Settings, env ControlEnv) (driving.GeoSearch, io.Closer, error)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Settings reads and writes application settings.
	Settings driving.SettingsService

	// NewControl builds the search control; it is called again whenever
	// the settings change.
	NewControl ControlFactory

	// ConfigPath is watched for external edits. Empty disables watching.
	ConfigPath string
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(settings driving.SettingsService, factory ControlFactory) *Ports {
	return &Ports{
		Settings:   settings,
		NewControl: factory,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	if p.NewControl == nil {
		return ErrMissingControlFactory
	}
	return nil
}
