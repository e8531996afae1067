package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geosearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/geosearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/geosearch/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{
		"control.position":             "bottomright",
		"control.show_marker":          false,
		"control.zoom_level":           int64(12),
		"control.max_markers":          int64(0),
		"control.message_hide_delay":   "5s",
		"autocomplete.enabled":         true,
		"autocomplete.query_delay":     int64(250),
		"provider.name":                "geonames",
		"provider.requests_per_second": int64(2),
		"provider.database_path":       "/tmp/geo.db",
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.PositionBottomRight, settings.Control.Position)
	assert.False(t, settings.Control.ShowMarker)
	assert.Equal(t, 12, settings.Control.ZoomLevel)
	assert.Equal(t, 0, settings.Control.MaxMarkers, "zero is a valid stored value")
	assert.Equal(t, 5*time.Second, settings.Control.MessageHideDelay)
	assert.True(t, settings.Control.EnableAutoComplete)
	assert.Equal(t, 250*time.Millisecond, settings.Control.AutocompleteQueryDelay)
	assert.Equal(t, domain.ProviderGeonames, settings.Provider.Name)
	assert.Equal(t, 2.0, settings.Provider.RequestsPerSecond)
	assert.Equal(t, "/tmp/geo.db", settings.Provider.DatabasePath)
}

func TestSettingsService_Get_MalformedValuesUseDefaults(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{
		"control.show_marker":        "not a bool",
		"control.message_hide_delay": "soon",
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultConfig()
	assert.Equal(t, defaults.ShowMarker, settings.Control.ShowMarker)
	assert.Equal(t, defaults.MessageHideDelay, settings.Control.MessageHideDelay)
}

func TestSettingsService_Get_OutOfRangeIsError(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{"provider.name": "bing"})
	service := NewSettingsService(store)

	_, err := service.Get()

	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("control.zoom_level", "10"))
	require.NoError(t, service.Set("autocomplete.query_delay", "300ms"))
	require.NoError(t, service.Set("control.draggable", "true"))
	require.NoError(t, service.Set("provider.requests_per_second", "0.5"))

	assert.Equal(t, 10, store.GetInt("control.zoom_level"))
	assert.Equal(t, "300ms", store.GetString("autocomplete.query_delay"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 10, settings.Control.ZoomLevel)
	assert.Equal(t, 300*time.Millisecond, settings.Control.AutocompleteQueryDelay)
	assert.True(t, settings.Control.Draggable)
	assert.Equal(t, 0.5, settings.Provider.RequestsPerSecond)
}

func TestSettingsService_Set_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  error
	}{
		{"unknown key", "control.colour", "red", domain.ErrUnknownSetting},
		{"unparseable int", "control.zoom_level", "high", domain.ErrInvalidConfig},
		{"negative int", "control.max_markers", "-1", domain.ErrInvalidConfig},
		{"bad position", "control.position", "middle", domain.ErrInvalidConfig},
		{"bad provider", "provider.name", "bing", domain.ErrUnsupportedProvider},
		{"negative rate", "provider.requests_per_second", "-2", domain.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, tt.want)
			_, stored := store.Get(tt.key)
			assert.False(t, stored, "invalid values are not persisted")
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()

	assert.Len(t, keys, len(settingsTable))
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "autocomplete.enabled")
	assert.Contains(t, keys, "provider.name")
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultSettings(), service.GetDefaults())
}

func TestSettingsService_Value(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{
		"control.message_hide_delay":   "5s",
		"provider.requests_per_second": 0.5,
	})
	service := NewSettingsService(store)

	v, err := service.Value("control.message_hide_delay")
	require.NoError(t, err)
	assert.Equal(t, "5s", v)

	v, err = service.Value("provider.requests_per_second")
	require.NoError(t, err)
	assert.Equal(t, "0.5", v)

	v, err = service.Value("control.zoom_level")
	require.NoError(t, err)
	assert.Equal(t, "18", v)

	_, err = service.Value("control.nope")
	assert.ErrorIs(t, err, domain.ErrUnknownSetting)
}

func TestSettingsService_Value_RoundTripsThroughSet(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	for _, key := range service.Keys() {
		v, err := service.Value(key)
		require.NoError(t, err, key)
		require.NoError(t, service.Set(key, v), key)
	}

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Reload(t *testing.T) {
	dir := t.TempDir()
	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	service := NewSettingsService(store)
	require.NoError(t, service.Set("control.zoom_level", "12"))

	// Edit the file behind the store's back.
	content := "[control]\nzoom_level = 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, file.FileName), []byte(content), 0o600))

	before, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 12, before.Control.ZoomLevel)

	require.NoError(t, service.Reload())

	after, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 7, after.Control.ZoomLevel)
}
