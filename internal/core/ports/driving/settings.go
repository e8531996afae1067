package driving

import "github.com/custodia-labs/geosearch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults.
	Get() (*domain.Settings, error)

	// Set validates and persists a single setting by key.
	Set(key, value string) error

	// Keys returns every recognised setting key.
	Keys() []string

	// Value returns the effective value of key as a string.
	Value(key string) (string, error)

	// Reload re-reads persisted settings.
	Reload() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
