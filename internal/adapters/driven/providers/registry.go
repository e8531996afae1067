package providers

import (
	"fmt"
	"io"
	"sort"

	"github.com/custodia-labs/geosearch/internal/adapters/driven/providers/geonames"
	"github.com/custodia-labs/geosearch/internal/adapters/driven/providers/nominatim"
	"github.com/custodia-labs/geosearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/geosearch/internal/adapters/driven/transport"
	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// Instance is a built provider with the transport it needs.
type Instance struct {
	// Provider is handed to the control.
	Provider driven.ProviderConfig

	// Transport is nil for direct providers.
	Transport driven.ResultTransport

	closer io.Closer
}

// Close releases resources held by the provider.
func (i *Instance) Close() error {
	if i.closer == nil {
		return nil
	}
	return i.closer.Close()
}

// BuilderFunc creates a provider instance from settings.
type BuilderFunc func(settings domain.Settings) (*Instance, error)

// Registry maps provider names to their builders.
type Registry struct {
	builders map[domain.ProviderName]BuilderFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[domain.ProviderName]BuilderFunc),
	}
}

// DefaultRegistry returns a registry with every built-in provider.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(domain.ProviderNominatim, buildNominatim)
	r.Register(domain.ProviderGeonames, buildGeonames)
	return r
}

// Register adds a provider builder.
func (r *Registry) Register(name domain.ProviderName, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates the provider selected by settings.Provider.Name.
func (r *Registry) Build(settings domain.Settings) (*Instance, error) {
	name := settings.Provider.Name
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, name)
	}
	logger.Debug("building provider %s", name)
	return builder(settings)
}

// Has returns true if a provider with the given name is registered.
func (r *Registry) Has(name domain.ProviderName) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered provider names, sorted.
func (r *Registry) Names() []domain.ProviderName {
	names := make([]domain.ProviderName, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func buildNominatim(settings domain.Settings) (*Instance, error) {
	p, err := nominatim.New(nominatim.Config{
		BaseURL:  settings.Provider.BaseURL,
		Country:  settings.Control.Country,
		Language: settings.Provider.Language,
		Limit:    settings.Control.MaxResultCount,
	})
	if err != nil {
		return nil, err
	}

	t, err := transport.New(transport.Config{
		UserAgent:         settings.Provider.UserAgent,
		DisableCORS:       settings.Provider.DisableCORS,
		RequestsPerSecond: settings.Provider.RequestsPerSecond,
		CacheSize:         settings.Provider.CacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("building transport: %w", err)
	}

	return &Instance{Provider: p.Config(), Transport: t}, nil
}

func buildGeonames(settings domain.Settings) (*Instance, error) {
	store, err := sqlite.NewStore(settings.Provider.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening gazetteer: %w", err)
	}

	p := geonames.New(store, geonames.Config{
		Language: settings.Provider.Language,
		Limit:    settings.Control.MaxResultCount,
	})

	return &Instance{Provider: p.Config(), closer: store}, nil
}
