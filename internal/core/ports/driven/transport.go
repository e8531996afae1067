package driven

import (
	"context"
	"encoding/json"
)

// ResultTransport fetches a query URL and returns the decoded response body.
type ResultTransport interface {
	// Fetch issues a GET for url. Transport failures are returned as
	// *domain.TransportError, non-fallback statuses as *domain.HTTPError
	// and undecodable bodies as *domain.ParseError.
	Fetch(ctx context.Context, url string) (json.RawMessage, error)
}

// TokenSource hands out single-use correlation tokens.
// Every call must return a value never returned before.
type TokenSource interface {
	NewToken() string
}
