package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/core/ports/driving"
)

// Ensure LookupService implements the interface.
var _ driving.LookupService = (*LookupService)(nil)

// ProviderBuilder creates the provider, its transport and a closer for any
// resources it holds. The transport and closer may be nil.
type ProviderBuilder func() (driven.ProviderConfig, driven.ResultTransport, io.Closer, error)

// LookupService resolves queries through a provider that is built on the
// first lookup and reused afterwards, so rate limits and caches carry
// across calls.
type LookupService struct {
	build ProviderBuilder

	once    sync.Once
	adapter *ProviderAdapter
	err     error

	// mu guards closer, which Close may read before or during the build.
	mu     sync.Mutex
	closer io.Closer
}

// NewLookupService creates a lookup service around build.
func NewLookupService(build ProviderBuilder) *LookupService {
	return &LookupService{build: build}
}

func (s *LookupService) init() error {
	s.once.Do(func() {
		if s.build == nil {
			s.err = domain.ErrNoProvider
			return
		}
		provider, transport, closer, err := s.build()
		if err != nil {
			s.err = fmt.Errorf("build provider: %w", err)
			return
		}
		adapter, err := NewProviderAdapter(provider, transport, nil)
		if err != nil {
			if closer != nil {
				_ = closer.Close()
			}
			s.err = err
			return
		}
		s.adapter = adapter
		s.mu.Lock()
		s.closer = closer
		s.mu.Unlock()
	})
	return s.err
}

// Lookup returns up to limit locations for query.
func (s *LookupService) Lookup(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	if err := s.init(); err != nil {
		return nil, err
	}
	return s.adapter.Lookup(ctx, query, limit)
}

// Close releases the provider's resources. It is safe to call more than
// once and concurrently with Lookup.
func (s *LookupService) Close() error {
	s.mu.Lock()
	closer := s.closer
	s.closer = nil
	s.mu.Unlock()

	if closer == nil {
		return nil
	}
	return closer.Close()
}
