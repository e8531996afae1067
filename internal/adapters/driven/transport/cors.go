package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// Ensure CORSTransport implements the interface.
var _ driven.ResultTransport = (*CORSTransport)(nil)

// CORSTransport issues a plain GET and inspects the status code.
type CORSTransport struct {
	client    *http.Client
	userAgent string
}

// NewCORSTransport creates a CORS-capable transport.
func NewCORSTransport(client *http.Client, userAgent string) *CORSTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &CORSTransport{client: client, userAgent: userAgent}
}

// Fetch returns the decoded body on 200. Status 0 (no response) and 400 wrap
// ErrFallThrough; any other status is an *domain.HTTPError.
func (t *CORSTransport) Fetch(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.TransportError{Transport: "cors", URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &domain.TransportError{Transport: "cors", URL: url, Err: ctx.Err()}
		}
		logger.Debug("CORS request failed without a response: %v", err)
		return nil, fmt.Errorf("%w: status 0: %v", ErrFallThrough, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &domain.TransportError{Transport: "cors", URL: url, Err: err}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return decodeJSON(body)
	case http.StatusBadRequest:
		logger.Debug("CORS request answered 400")
		return nil, fmt.Errorf("%w: status %d", ErrFallThrough, resp.StatusCode)
	default:
		return nil, &domain.HTTPError{
			Status:     resp.StatusCode,
			Body:       truncateBody(body),
			RetryAfter: retryAfter(resp.Header),
		}
	}
}
