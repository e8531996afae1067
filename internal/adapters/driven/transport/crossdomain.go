package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

// Ensure CrossDomainTransport implements the interface.
var _ driven.ResultTransport = (*CrossDomainTransport)(nil)

// CrossDomainTransport issues a GET without credentials and decodes whatever
// body arrives. It cannot see the status code; only network failures are
// reported.
type CrossDomainTransport struct {
	client    *http.Client
	userAgent string
}

// NewCrossDomainTransport creates a cross-domain transport.
func NewCrossDomainTransport(client *http.Client, userAgent string) *CrossDomainTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &CrossDomainTransport{client: client, userAgent: userAgent}
}

// Fetch retrieves url and decodes the body as JSON.
func (t *CrossDomainTransport) Fetch(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.TransportError{Transport: "cross-domain", URL: url, Err: err}
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Transport: "cross-domain", URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &domain.TransportError{Transport: "cross-domain", URL: url, Err: err}
	}
	return decodeJSON(body)
}
