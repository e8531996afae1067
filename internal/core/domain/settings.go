package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Position is the map corner the control is anchored to.
type Position string

// Available control positions.
const (
	PositionTopLeft     Position = "topleft"
	PositionTopCenter   Position = "topcenter"
	PositionTopRight    Position = "topright"
	PositionBottomLeft  Position = "bottomleft"
	PositionBottomRight Position = "bottomright"
)

// IsValid returns true if the position is recognised.
func (p Position) IsValid() bool {
	switch p {
	case PositionTopLeft, PositionTopCenter, PositionTopRight, PositionBottomLeft, PositionBottomRight:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p Position) String() string {
	return string(p)
}

// Config holds the recognised control options.
// It is fixed for the lifetime of a control instance.
type Config struct {
	// Position anchors the control on the map.
	Position Position

	// ShowMarker draws markers for commit results.
	ShowMarker bool

	// ShowPopup binds a label popup to each marker.
	ShowPopup bool

	// CustomIcon names a marker icon. Empty uses the map default.
	CustomIcon string

	// RetainZoomLevel keeps the current zoom instead of fitting bounds.
	RetainZoomLevel bool

	// Draggable makes result markers draggable.
	Draggable bool

	// AlwaysShowSearchBox keeps the box open; the icon then submits.
	AlwaysShowSearchBox bool

	// Country restricts URL providers that support it (ISO 3166-1 codes).
	Country string

	// SearchLabel is the box placeholder and icon title.
	SearchLabel string

	// NotFoundMessage is shown when a commit search finds nothing.
	NotFoundMessage string

	// MessageHideDelay is how long a flash message stays up.
	MessageHideDelay time.Duration

	// ZoomLevel is used when centring on a result.
	ZoomLevel int

	// EnableButtons shows the submit and cancel buttons.
	EnableButtons bool

	// EnableAutoComplete turns on live suggestions.
	EnableAutoComplete bool

	// AutocompleteMinQueryLen is the shortest query that is autocompleted.
	AutocompleteMinQueryLen int

	// AutocompleteQueryDelay is the debounce interval.
	AutocompleteQueryDelay time.Duration

	// MaxMarkers caps the markers drawn for one commit.
	MaxMarkers int

	// MaxResultCount caps the suggestion list.
	MaxResultCount int
}

// DefaultConfig returns the stock control configuration.
func DefaultConfig() Config {
	return Config{
		Position:                PositionTopLeft,
		ShowMarker:              true,
		ShowPopup:               false,
		CustomIcon:              "",
		RetainZoomLevel:         false,
		Draggable:               false,
		AlwaysShowSearchBox:     false,
		Country:                 "",
		SearchLabel:             "Enter address",
		NotFoundMessage:         "Sorry, that address could not be found.",
		MessageHideDelay:        3000 * time.Millisecond,
		ZoomLevel:               18,
		EnableButtons:           false,
		EnableAutoComplete:      false,
		AutocompleteMinQueryLen: 3,
		AutocompleteQueryDelay:  800 * time.Millisecond,
		MaxMarkers:              1,
		MaxResultCount:          10,
	}
}

// Validate checks that numeric options are in range.
func (c Config) Validate() error {
	if !c.Position.IsValid() {
		return fmt.Errorf("%w: position %q", ErrInvalidConfig, c.Position)
	}
	if c.ZoomLevel < 0 {
		return fmt.Errorf("%w: zoom level %d", ErrInvalidConfig, c.ZoomLevel)
	}
	if c.MaxMarkers < 0 {
		return fmt.Errorf("%w: max markers %d", ErrInvalidConfig, c.MaxMarkers)
	}
	if c.MaxResultCount < 0 {
		return fmt.Errorf("%w: max result count %d", ErrInvalidConfig, c.MaxResultCount)
	}
	if c.AutocompleteMinQueryLen < 0 {
		return fmt.Errorf("%w: autocomplete min query length %d", ErrInvalidConfig, c.AutocompleteMinQueryLen)
	}
	if c.AutocompleteQueryDelay < 0 || c.MessageHideDelay < 0 {
		return fmt.Errorf("%w: negative delay", ErrInvalidConfig)
	}
	return nil
}

// ProviderName identifies a lookup provider implementation.
type ProviderName string

// Available providers.
const (
	// ProviderNominatim is the OpenStreetMap Nominatim search API.
	ProviderNominatim ProviderName = "nominatim"

	// ProviderGeonames is the offline gazetteer database.
	ProviderGeonames ProviderName = "geonames"
)

// IsValid returns true if the provider is recognised.
func (p ProviderName) IsValid() bool {
	return p == ProviderNominatim || p == ProviderGeonames
}

// String returns the string representation.
func (p ProviderName) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p ProviderName) Description() string {
	switch p {
	case ProviderNominatim:
		return "OpenStreetMap Nominatim (online)"
	case ProviderGeonames:
		return "Geonames gazetteer (offline)"
	default:
		return unknownDescription
	}
}

// ProviderSettings configures the lookup provider and its transport.
type ProviderSettings struct {
	// Name selects the provider.
	Name ProviderName

	// BaseURL overrides the provider endpoint (URL providers).
	BaseURL string

	// DatabasePath is the gazetteer database file (geonames).
	DatabasePath string

	// Language filters gazetteer names by ISO language code.
	Language string

	// UserAgent is sent with HTTP requests.
	UserAgent string

	// RequestsPerSecond limits outbound requests. Zero disables limiting.
	RequestsPerSecond float64

	// CacheSize is the number of responses kept. Zero disables caching.
	CacheSize int

	// DisableCORS skips the CORS-capable transport, forcing the fallbacks.
	DisableCORS bool
}

// Settings is the full application configuration.
type Settings struct {
	Control  Config
	Provider ProviderSettings
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	return Settings{
		Control: DefaultConfig(),
		Provider: ProviderSettings{
			Name:              ProviderNominatim,
			BaseURL:           "https://nominatim.openstreetmap.org/search",
			UserAgent:         "geosearch/1.0",
			RequestsPerSecond: 1,
			CacheSize:         128,
		},
	}
}

// AllProviders returns every recognised provider.
func AllProviders() []ProviderName {
	return []ProviderName{ProviderNominatim, ProviderGeonames}
}
