// Package geonames implements a direct lookup provider over the offline
// gazetteer.
package geonames

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/geosearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.DirectLookup = (*Provider)(nil)

// Name is the provider display name.
const Name = "geonames"

const defaultLimit = 10

// Searcher finds gazetteer names by prefix.
type Searcher interface {
	Search(ctx context.Context, prefix, lang string, limit int) ([]sqlite.Place, error)
}

// Config configures the provider.
type Config struct {
	// Language restricts names to one ISO language code. Empty matches all.
	Language string

	// Limit caps results per lookup. Zero uses the default.
	Limit int
}

// Provider resolves queries against the gazetteer.
type Provider struct {
	store    Searcher
	language string
	limit    int
}

// New creates a provider over store.
func New(store Searcher, cfg Config) *Provider {
	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Provider{store: store, language: cfg.Language, limit: limit}
}

// Config wraps p as a driven.ProviderConfig.
func (p *Provider) Config() driven.ProviderConfig {
	return driven.NewDirectProvider(Name, p)
}

// Lookup returns places whose full name starts with query.
func (p *Provider) Lookup(ctx context.Context, query string) ([]domain.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	places, err := p.store.Search(ctx, query, p.language, p.limit)
	if err != nil {
		return nil, fmt.Errorf("geonames: %w", err)
	}

	locations := make([]domain.Location, 0, len(places))
	for _, pl := range places {
		locations = append(locations, toLocation(pl))
	}
	return locations, nil
}

func toLocation(pl sqlite.Place) domain.Location {
	details := map[string]any{
		"geoid":        pl.GeoID,
		"name":         pl.Name,
		"population":   pl.Population,
		"feature_code": pl.FeatureCode,
		"feature_name": pl.FeatureName,
	}
	if pl.Lang != "" {
		details["lang"] = pl.Lang
	}
	if len(pl.Links) > 0 {
		details["links"] = pl.Links
	}
	return domain.NewLocation(pl.Longitude, pl.Latitude, pl.FullName, nil, details)
}
