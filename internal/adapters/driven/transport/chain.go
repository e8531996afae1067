package transport

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// Ensure Chain implements the interface.
var _ driven.ResultTransport = (*Chain)(nil)

// Chain selects a transport per request. Any member may be nil, meaning
// that transport is unavailable.
type Chain struct {
	CORS        driven.ResultTransport
	CrossDomain driven.ResultTransport
	Script      driven.ResultTransport
}

// Fetch tries CORS, then cross-domain, then script injection. A CORS
// response with status 0 or 400 falls through to script injection.
func (c *Chain) Fetch(ctx context.Context, url string) (json.RawMessage, error) {
	switch {
	case c.CORS != nil:
		raw, err := c.CORS.Fetch(ctx, url)
		if err == nil || !errors.Is(err, ErrFallThrough) {
			return raw, err
		}
		logger.Debug("Falling back to script injection: %v", err)
		return c.script(ctx, url)
	case c.CrossDomain != nil:
		return c.CrossDomain.Fetch(ctx, url)
	default:
		return c.script(ctx, url)
	}
}

func (c *Chain) script(ctx context.Context, url string) (json.RawMessage, error) {
	if c.Script == nil {
		return nil, &domain.TransportError{Transport: "script", URL: url, Err: domain.ErrTransportUnavailable}
	}
	return c.Script.Fetch(ctx, url)
}
