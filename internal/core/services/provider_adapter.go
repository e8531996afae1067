package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/core/ports/driving"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// Ensure ProviderAdapter implements the interface.
var _ driving.LookupService = (*ProviderAdapter)(nil)

// ProviderAdapter runs lookups against the configured provider, fetching
// through the transport when the provider is URL based.
type ProviderAdapter struct {
	provider  driven.ProviderConfig
	transport driven.ResultTransport
	scheduler driven.Scheduler
	exec      func(func())
}

// NewProviderAdapter creates a provider adapter.
// The scheduler may be nil for callers that only use Lookup.
func NewProviderAdapter(
	provider driven.ProviderConfig,
	transport driven.ResultTransport,
	scheduler driven.Scheduler,
) (*ProviderAdapter, error) {
	if provider.IsZero() {
		return nil, domain.ErrNoProvider
	}
	if provider.Kind() == driven.ProviderURL && transport == nil {
		return nil, fmt.Errorf("provider %s: %w", provider.Name(), domain.ErrTransportUnavailable)
	}

	return &ProviderAdapter{
		provider:  provider,
		transport: transport,
		scheduler: scheduler,
		exec:      func(fn func()) { go fn() },
	}, nil
}

// SetExecutor replaces how the blocking part of Resolve is run.
// The default starts a goroutine per call.
func (a *ProviderAdapter) SetExecutor(exec func(func())) {
	if exec != nil {
		a.exec = exec
	}
}

// Provider returns the configured provider.
func (a *ProviderAdapter) Provider() driven.ProviderConfig {
	return a.provider
}

// Resolve looks up query off the event loop and delivers exactly one of the
// callbacks back on it. In-flight lookups are never cancelled; a caller that
// no longer cares simply ignores the callback.
func (a *ProviderAdapter) Resolve(
	ctx context.Context,
	query string,
	onSuccess func(locations []domain.Location, query string),
	onFailure func(err error),
) {
	a.exec(func() {
		locations, err := a.resolve(ctx, query)
		deliver := func() {
			if err != nil {
				onFailure(err)
				return
			}
			onSuccess(locations, query)
		}
		if a.scheduler == nil {
			deliver()
			return
		}
		a.scheduler.Post(deliver)
	})
}

// Lookup resolves query synchronously and truncates to limit.
func (a *ProviderAdapter) Lookup(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	locations, err := a.resolve(ctx, query)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(locations) > limit {
		locations = locations[:limit]
	}
	return locations, nil
}

func (a *ProviderAdapter) resolve(ctx context.Context, query string) ([]domain.Location, error) {
	logger.Debug("Resolving %q with %s provider %s", query, a.provider.Kind(), a.provider.Name())

	switch a.provider.Kind() {
	case driven.ProviderDirect:
		return a.lookupDirect(ctx, query)
	case driven.ProviderURL:
		return a.lookupURL(ctx, query)
	default:
		return nil, domain.ErrNoProvider
	}
}

// lookupDirect runs the in-process lookup. A panic is reported as a
// provider build error; returned errors keep their own type.
func (a *ProviderAdapter) lookupDirect(ctx context.Context, query string) (locations []domain.Location, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.ProviderBuildError{Provider: a.provider.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	locations, err = a.provider.Direct().Lookup(ctx, query)
	if err != nil {
		logger.Warn("Direct lookup failed: %v", err)
		return nil, fmt.Errorf("%s lookup: %w", a.provider.Name(), err)
	}
	logger.Debug("Direct lookup: %d locations", len(locations))
	return locations, nil
}

func (a *ProviderAdapter) lookupURL(ctx context.Context, query string) ([]domain.Location, error) {
	url, err := a.buildURL(query)
	if err != nil {
		logger.Warn("Building query URL failed: %v", err)
		return nil, err
	}
	logger.Debug("Query URL: %s", url)

	raw, err := a.transport.Fetch(ctx, url)
	if err != nil {
		logger.Warn("Fetch failed: %v", err)
		return nil, fmt.Errorf("fetch: %w", err)
	}

	return a.parse(raw)
}

func (a *ProviderAdapter) buildURL(query string) (url string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.ProviderBuildError{Provider: a.provider.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	url, err = a.provider.URL().BuildURL(query)
	if err != nil {
		return "", &domain.ProviderBuildError{Provider: a.provider.Name(), Err: err}
	}
	return url, nil
}

func (a *ProviderAdapter) parse(raw json.RawMessage) (locations []domain.Location, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.ParseError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	locations, err = a.provider.URL().Parse(raw)
	if err != nil {
		var pe *domain.ParseError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, &domain.ParseError{Err: err}
	}
	logger.Debug("Parsed %d locations", len(locations))
	return locations, nil
}
