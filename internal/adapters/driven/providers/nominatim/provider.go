// Package nominatim implements a URL provider for the OpenStreetMap
// Nominatim search API.
package nominatim

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.URLProvider = (*Provider)(nil)

// DefaultBaseURL is the public Nominatim search endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org/search"

// Name is the provider display name.
const Name = "nominatim"

// defaultLimit matches the suggestion list capacity.
const defaultLimit = 10

// Config configures the provider.
type Config struct {
	// BaseURL is the search endpoint. Empty uses DefaultBaseURL.
	BaseURL string

	// Country restricts results to comma-separated ISO 3166-1 codes.
	Country string

	// Language sets accept-language.
	Language string

	// Limit caps results per request. Zero uses the default.
	Limit int
}

// Provider builds Nominatim query URLs and parses their responses.
type Provider struct {
	base     *url.URL
	country  string
	language string
	limit    int
}

// New creates a provider.
func New(cfg Config) (*Provider, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("nominatim: base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("nominatim: base url %q is not absolute", raw)
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	return &Provider{
		base:     base,
		country:  strings.ToLower(strings.ReplaceAll(cfg.Country, " ", "")),
		language: cfg.Language,
		limit:    limit,
	}, nil
}

// Config wraps p as a driven.ProviderConfig.
func (p *Provider) Config() driven.ProviderConfig {
	return driven.NewURLProvider(Name, p)
}

// BuildURL returns the search URL for query.
func (p *Provider) BuildURL(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", domain.ErrEmptyQuery
	}

	params := p.base.Query()
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(p.limit))
	if p.country != "" {
		params.Set("countrycodes", p.country)
	}
	if p.language != "" {
		params.Set("accept-language", p.language)
	}

	u := *p.base
	u.RawQuery = params.Encode()
	return u.String(), nil
}

var errNotArray = errors.New("nominatim: expected a JSON array")

// Parse converts a search response into locations, skipping entries with
// unusable coordinates.
func (p *Provider) Parse(raw json.RawMessage) ([]domain.Location, error) {
	var results []searchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotArray, err)
	}

	locations := make([]domain.Location, 0, len(results))
	for _, r := range results {
		loc, ok := toLocation(r)
		if !ok {
			continue
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

func toLocation(r searchResult) (domain.Location, bool) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return domain.Location{}, false
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return domain.Location{}, false
	}

	details := map[string]any{
		"place_id":   r.PlaceID,
		"osm_type":   r.OSMType,
		"osm_id":     r.OSMID,
		"class":      r.Class,
		"type":       r.Type,
		"importance": r.Importance,
	}
	if len(r.Address) > 0 {
		details["address"] = r.Address
	}

	return domain.NewLocation(lon, lat, r.DisplayName, parseBounds(r.BoundingBox), details), true
}

// parseBounds returns nil unless all four corners parse.
func parseBounds(bb []string) *domain.BoundingBox {
	if len(bb) != 4 {
		return nil
	}
	var v [4]float64
	for i, s := range bb {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		v[i] = f
	}
	return &domain.BoundingBox{South: v[0], North: v[1], West: v[2], East: v[3]}
}
