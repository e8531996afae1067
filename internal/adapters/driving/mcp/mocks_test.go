package mcp

import (
	"context"

	"github.com/custodia-labs/geosearch/internal/core/domain"
)

// mockLookupService is a mock implementation of driving.LookupService.
type mockLookupService struct {
	locations []domain.Location
	err       error

	gotQuery string
	gotLimit int
}

func (m *mockLookupService) Lookup(_ context.Context, query string, limit int) ([]domain.Location, error) {
	m.gotQuery = query
	m.gotLimit = limit
	return m.locations, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) Value(_ string) (string, error) {
	return "", m.err
}

func (m *mockSettingsService) Reload() error {
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}
