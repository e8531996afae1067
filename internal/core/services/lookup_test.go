package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

// constLookup answers every query with itself and records nothing, so it
// can be shared between goroutines.
type constLookup []domain.Location

func (c constLookup) Lookup(context.Context, string) ([]domain.Location, error) {
	return c, nil
}

type countingCloser struct {
	closed int
}

func (c *countingCloser) Close() error {
	c.closed++
	return nil
}

func TestLookupService_BuildsOnce(t *testing.T) {
	builds := 0
	closer := &countingCloser{}
	svc := NewLookupService(func() (driven.ProviderConfig, driven.ResultTransport, io.Closer, error) {
		builds++
		lookup := staticLookup(loc("Paris", 2.35, 48.85), loc("Paris, TX", -95.55, 33.66))
		return driven.NewDirectProvider("test", lookup), nil, closer, nil
	})

	first, err := svc.Lookup(context.Background(), "paris", 1)
	require.NoError(t, err)
	second, err := svc.Lookup(context.Background(), "paris", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, builds)
	assert.Len(t, first, 1)
	assert.Len(t, second, 2)

	require.NoError(t, svc.Close())
	require.NoError(t, svc.Close())
	assert.Equal(t, 1, closer.closed)
}

func TestLookupService_ConcurrentFirstLookupAndClose(t *testing.T) {
	var builds atomic.Int32
	svc := NewLookupService(func() (driven.ProviderConfig, driven.ResultTransport, io.Closer, error) {
		builds.Add(1)
		return driven.NewDirectProvider("test", constLookup{loc("Paris", 2.35, 48.85)}), nil, &countingCloser{}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Lookup(context.Background(), "paris", 1)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Close())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
}

func TestLookupService_BuildError(t *testing.T) {
	builds := 0
	svc := NewLookupService(func() (driven.ProviderConfig, driven.ResultTransport, io.Closer, error) {
		builds++
		return driven.ProviderConfig{}, nil, nil, errors.New("no database")
	})

	_, err := svc.Lookup(context.Background(), "paris", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database")

	_, err = svc.Lookup(context.Background(), "paris", 5)
	assert.Error(t, err)
	assert.Equal(t, 1, builds)
	assert.NoError(t, svc.Close())
}

func TestLookupService_NilBuilder(t *testing.T) {
	svc := NewLookupService(nil)

	_, err := svc.Lookup(context.Background(), "paris", 5)

	assert.ErrorIs(t, err, domain.ErrNoProvider)
}

func TestLookupService_InvalidProviderClosesResources(t *testing.T) {
	closer := &countingCloser{}
	svc := NewLookupService(func() (driven.ProviderConfig, driven.ResultTransport, io.Closer, error) {
		return driven.ProviderConfig{}, nil, closer, nil
	})

	_, err := svc.Lookup(context.Background(), "paris", 5)

	assert.ErrorIs(t, err, domain.ErrNoProvider)
	assert.Equal(t, 1, closer.closed)
}

func TestLookupService_EmptyQuery(t *testing.T) {
	svc := NewLookupService(func() (driven.ProviderConfig, driven.ResultTransport, io.Closer, error) {
		return driven.NewDirectProvider("test", staticLookup()), nil, nil, nil
	})

	_, err := svc.Lookup(context.Background(), "   ", 5)

	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}
