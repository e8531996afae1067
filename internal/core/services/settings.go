package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyPosition          = "control.position"
	keyShowMarker        = "control.show_marker"
	keyShowPopup         = "control.show_popup"
	keyCustomIcon        = "control.custom_icon"
	keyRetainZoomLevel   = "control.retain_zoom_level"
	keyDraggable         = "control.draggable"
	keyAlwaysShowBox     = "control.always_show_search_box"
	keyCountry           = "control.country"
	keySearchLabel       = "control.search_label"
	keyNotFoundMessage   = "control.not_found_message"
	keyMessageHideDelay  = "control.message_hide_delay"
	keyZoomLevel         = "control.zoom_level"
	keyEnableButtons     = "control.enable_buttons"
	keyMaxMarkers        = "control.max_markers"
	keyAutocomplete      = "autocomplete.enabled"
	keyAutocompleteMin   = "autocomplete.min_query_length"
	keyAutocompleteDelay = "autocomplete.query_delay"
	keyMaxResultCount    = "autocomplete.max_result_count"
	keyProviderName      = "provider.name"
	keyProviderBaseURL   = "provider.base_url"
	keyProviderDatabase  = "provider.database_path"
	keyProviderLanguage  = "provider.language"
	keyProviderUserAgent = "provider.user_agent"
	keyProviderRate      = "provider.requests_per_second"
	keyProviderCacheSize = "provider.cache_size"
	keyProviderNoCORS    = "provider.disable_cors"
)

type settingKind int

const (
	kindString settingKind = iota
	kindBool
	kindInt
	kindFloat
	kindDuration
)

// setting binds a config key to a field of domain.Settings.
type setting struct {
	kind  settingKind
	apply func(s *domain.Settings, v any)
}

var settingsTable = map[string]setting{
	keyPosition: {kindString, func(s *domain.Settings, v any) {
		s.Control.Position = domain.Position(v.(string))
	}},
	keyShowMarker:      {kindBool, func(s *domain.Settings, v any) { s.Control.ShowMarker = v.(bool) }},
	keyShowPopup:       {kindBool, func(s *domain.Settings, v any) { s.Control.ShowPopup = v.(bool) }},
	keyCustomIcon:      {kindString, func(s *domain.Settings, v any) { s.Control.CustomIcon = v.(string) }},
	keyRetainZoomLevel: {kindBool, func(s *domain.Settings, v any) { s.Control.RetainZoomLevel = v.(bool) }},
	keyDraggable:       {kindBool, func(s *domain.Settings, v any) { s.Control.Draggable = v.(bool) }},
	keyAlwaysShowBox:   {kindBool, func(s *domain.Settings, v any) { s.Control.AlwaysShowSearchBox = v.(bool) }},
	keyCountry:         {kindString, func(s *domain.Settings, v any) { s.Control.Country = v.(string) }},
	keySearchLabel:     {kindString, func(s *domain.Settings, v any) { s.Control.SearchLabel = v.(string) }},
	keyNotFoundMessage: {kindString, func(s *domain.Settings, v any) { s.Control.NotFoundMessage = v.(string) }},
	keyMessageHideDelay: {kindDuration, func(s *domain.Settings, v any) {
		s.Control.MessageHideDelay = v.(time.Duration)
	}},
	keyZoomLevel:     {kindInt, func(s *domain.Settings, v any) { s.Control.ZoomLevel = v.(int) }},
	keyEnableButtons: {kindBool, func(s *domain.Settings, v any) { s.Control.EnableButtons = v.(bool) }},
	keyMaxMarkers:    {kindInt, func(s *domain.Settings, v any) { s.Control.MaxMarkers = v.(int) }},
	keyAutocomplete:  {kindBool, func(s *domain.Settings, v any) { s.Control.EnableAutoComplete = v.(bool) }},
	keyAutocompleteMin: {kindInt, func(s *domain.Settings, v any) {
		s.Control.AutocompleteMinQueryLen = v.(int)
	}},
	keyAutocompleteDelay: {kindDuration, func(s *domain.Settings, v any) {
		s.Control.AutocompleteQueryDelay = v.(time.Duration)
	}},
	keyMaxResultCount: {kindInt, func(s *domain.Settings, v any) { s.Control.MaxResultCount = v.(int) }},
	keyProviderName: {kindString, func(s *domain.Settings, v any) {
		s.Provider.Name = domain.ProviderName(v.(string))
	}},
	keyProviderBaseURL:   {kindString, func(s *domain.Settings, v any) { s.Provider.BaseURL = v.(string) }},
	keyProviderDatabase:  {kindString, func(s *domain.Settings, v any) { s.Provider.DatabasePath = v.(string) }},
	keyProviderLanguage:  {kindString, func(s *domain.Settings, v any) { s.Provider.Language = v.(string) }},
	keyProviderUserAgent: {kindString, func(s *domain.Settings, v any) { s.Provider.UserAgent = v.(string) }},
	keyProviderRate: {kindFloat, func(s *domain.Settings, v any) {
		s.Provider.RequestsPerSecond = v.(float64)
	}},
	keyProviderCacheSize: {kindInt, func(s *domain.Settings, v any) { s.Provider.CacheSize = v.(int) }},
	keyProviderNoCORS:    {kindBool, func(s *domain.Settings, v any) { s.Provider.DisableCORS = v.(bool) }},
}

// SettingsService maps configuration keys onto domain settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Missing or malformed values fall back to
// the defaults; values that parse but are out of range are an error.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	for key, def := range settingsTable {
		raw, ok := s.configStore.Get(key)
		if !ok {
			continue
		}
		v, err := convert(def.kind, raw)
		if err != nil {
			continue
		}
		def.apply(&settings, v)
	}

	if err := validateSettings(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	def, ok := settingsTable[key]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}

	v, err := convert(def.kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, key, err)
	}

	settings, err := s.Get()
	if err != nil {
		defaults := domain.DefaultSettings()
		settings = &defaults
	}
	def.apply(settings, v)
	if err := validateSettings(settings); err != nil {
		return err
	}

	stored := v
	if d, isDuration := v.(time.Duration); isDuration {
		stored = d.String()
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every recognised setting key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingsTable))
	for k := range settingsTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the effective value of key, formatted the way Set accepts it.
func (s *SettingsService) Value(key string) (string, error) {
	if _, ok := settingsTable[key]; !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	return settingValue(settings, key), nil
}

// Reload re-reads the backing store, picking up external edits.
func (s *SettingsService) Reload() error {
	if err := s.configStore.Load(); err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func settingValue(s *domain.Settings, key string) string {
	c, p := s.Control, s.Provider
	switch key {
	case keyPosition:
		return c.Position.String()
	case keyShowMarker:
		return strconv.FormatBool(c.ShowMarker)
	case keyShowPopup:
		return strconv.FormatBool(c.ShowPopup)
	case keyCustomIcon:
		return c.CustomIcon
	case keyRetainZoomLevel:
		return strconv.FormatBool(c.RetainZoomLevel)
	case keyDraggable:
		return strconv.FormatBool(c.Draggable)
	case keyAlwaysShowBox:
		return strconv.FormatBool(c.AlwaysShowSearchBox)
	case keyCountry:
		return c.Country
	case keySearchLabel:
		return c.SearchLabel
	case keyNotFoundMessage:
		return c.NotFoundMessage
	case keyMessageHideDelay:
		return c.MessageHideDelay.String()
	case keyZoomLevel:
		return strconv.Itoa(c.ZoomLevel)
	case keyEnableButtons:
		return strconv.FormatBool(c.EnableButtons)
	case keyMaxMarkers:
		return strconv.Itoa(c.MaxMarkers)
	case keyAutocomplete:
		return strconv.FormatBool(c.EnableAutoComplete)
	case keyAutocompleteMin:
		return strconv.Itoa(c.AutocompleteMinQueryLen)
	case keyAutocompleteDelay:
		return c.AutocompleteQueryDelay.String()
	case keyMaxResultCount:
		return strconv.Itoa(c.MaxResultCount)
	case keyProviderName:
		return p.Name.String()
	case keyProviderBaseURL:
		return p.BaseURL
	case keyProviderDatabase:
		return p.DatabasePath
	case keyProviderLanguage:
		return p.Language
	case keyProviderUserAgent:
		return p.UserAgent
	case keyProviderRate:
		return strconv.FormatFloat(p.RequestsPerSecond, 'f', -1, 64)
	case keyProviderCacheSize:
		return strconv.Itoa(p.CacheSize)
	case keyProviderNoCORS:
		return strconv.FormatBool(p.DisableCORS)
	default:
		return ""
	}
}

func validateSettings(settings *domain.Settings) error {
	if err := settings.Control.Validate(); err != nil {
		return err
	}
	p := settings.Provider
	if !p.Name.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, p.Name)
	}
	if p.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests per second %v", domain.ErrInvalidConfig, p.RequestsPerSecond)
	}
	if p.CacheSize < 0 {
		return fmt.Errorf("%w: cache size %d", domain.ErrInvalidConfig, p.CacheSize)
	}
	return nil
}

// convert coerces a stored or user-supplied value to the setting's type.
// TOML decodes integers as int64; the CLI passes strings.
func convert(kind settingKind, raw any) (any, error) {
	switch kind {
	case kindString:
		if v, ok := raw.(string); ok {
			return v, nil
		}
		return fmt.Sprint(raw), nil
	case kindBool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			return strconv.ParseBool(v)
		}
	case kindInt:
		switch v := raw.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			return int(v), nil
		case string:
			return strconv.Atoi(v)
		}
	case kindFloat:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		case int:
			return float64(v), nil
		case string:
			return strconv.ParseFloat(v, 64)
		}
	case kindDuration:
		switch v := raw.(type) {
		case time.Duration:
			return v, nil
		case int64:
			return time.Duration(v) * time.Millisecond, nil
		case int:
			return time.Duration(v) * time.Millisecond, nil
		case string:
			return time.ParseDuration(v)
		}
	}
	return nil, fmt.Errorf("unexpected %T", raw)
}
