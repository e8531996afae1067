package transport

import (
	"context"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// Ensure Cache implements the interface.
var _ driven.ResultTransport = (*Cache)(nil)

// Cache keeps the most recent successful responses by URL. Autocomplete
// tends to repeat queries as the user edits, so hits skip the network and
// the rate limiter.
type Cache struct {
	next    driven.ResultTransport
	entries *lru.Cache[string, json.RawMessage]
}

// NewCache wraps next with an LRU of size entries.
func NewCache(next driven.ResultTransport, size int) (*Cache, error) {
	entries, err := lru.New[string, json.RawMessage](size)
	if err != nil {
		return nil, fmt.Errorf("create response cache: %w", err)
	}
	return &Cache{next: next, entries: entries}, nil
}

// Fetch returns a cached response or fetches and stores it. Failures are
// never cached.
func (c *Cache) Fetch(ctx context.Context, url string) (json.RawMessage, error) {
	if raw, ok := c.entries.Get(url); ok {
		logger.Debug("Response cache hit: %s", url)
		return clone(raw), nil
	}

	raw, err := c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	c.entries.Add(url, clone(raw))
	return raw, nil
}

// Len returns the number of cached responses.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached response.
func (c *Cache) Purge() {
	c.entries.Purge()
}

func clone(raw json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
