package driven

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/geosearch/internal/core/domain"
)

// DirectLookup resolves a query in process.
type DirectLookup interface {
	// Lookup returns the locations matching query, best match first.
	Lookup(ctx context.Context, query string) ([]domain.Location, error)
}

// URLProvider resolves a query through a remote service.
type URLProvider interface {
	// BuildURL returns the request URL for query.
	BuildURL(query string) (string, error)

	// Parse converts the decoded response body into locations.
	Parse(raw json.RawMessage) ([]domain.Location, error)
}

// ProviderKind tags the variant held by a ProviderConfig.
type ProviderKind int

const (
	// ProviderDirect resolves in process.
	ProviderDirect ProviderKind = iota

	// ProviderURL builds a URL and parses the fetched response.
	ProviderURL
)

// String returns the string representation.
func (k ProviderKind) String() string {
	if k == ProviderURL {
		return "url"
	}
	return "direct"
}

// ProviderConfig is the lookup provider chosen when a control is built.
// Exactly one of the variants is set and it never changes afterwards.
type ProviderConfig struct {
	name   string
	kind   ProviderKind
	direct DirectLookup
	url    URLProvider
}

// NewDirectProvider wraps an in-process lookup.
func NewDirectProvider(name string, lookup DirectLookup) ProviderConfig {
	return ProviderConfig{name: name, kind: ProviderDirect, direct: lookup}
}

// NewURLProvider wraps a URL-based lookup.
func NewURLProvider(name string, provider URLProvider) ProviderConfig {
	return ProviderConfig{name: name, kind: ProviderURL, url: provider}
}

// Name returns the provider display name.
func (p ProviderConfig) Name() string { return p.name }

// Kind returns which variant is active.
func (p ProviderConfig) Kind() ProviderKind { return p.kind }

// Direct returns the in-process lookup, or nil for URL providers.
func (p ProviderConfig) Direct() DirectLookup { return p.direct }

// URL returns the URL provider, or nil for direct providers.
func (p ProviderConfig) URL() URLProvider { return p.url }

// IsZero reports whether no provider was configured.
func (p ProviderConfig) IsZero() bool {
	return p.direct == nil && p.url == nil
}
