package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/geosearch/internal/core/domain"
	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// Ensure RateLimiter implements the interface.
var _ driven.ResultTransport = (*RateLimiter)(nil)

// defaultBackoff applies to a 429 without a Retry-After hint.
const defaultBackoff = 60 * time.Second

// RateLimiter throttles requests to the wrapped transport with a token
// bucket and backs off after a 429 response.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	next    driven.ResultTransport
}

// NewRateLimiter wraps next. A non-positive rate disables throttling but
// keeps the 429 backoff.
func NewRateLimiter(next driven.ResultTransport, requestsPerSecond float64, burst int) *RateLimiter {
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(limit, burst),
		next:    next,
	}
}

// Fetch waits for a token, then fetches.
func (r *RateLimiter) Fetch(ctx context.Context, url string) (json.RawMessage, error) {
	if err := r.Wait(ctx); err != nil {
		return nil, &domain.TransportError{Transport: "rate-limit", URL: url, Err: err}
	}

	raw, err := r.next.Fetch(ctx, url)
	var he *domain.HTTPError
	if errors.As(err, &he) && he.Status == http.StatusTooManyRequests {
		r.RecordRateLimitError(he.RetryAfter)
	}
	return raw, err
}

// Wait blocks until a request may be made, honouring any backoff.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		timer := time.NewTimer(time.Until(retryAt))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError starts a backoff period.
func (r *RateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	if retryAfter <= 0 {
		retryAfter = defaultBackoff
	}
	logger.Warn("Rate limited, backing off for %s", retryAfter)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(retryAfter)
}

// RoundTripper returns base with every request gated by r, so each HTTP
// request draws its own token however many a single fetch makes. A nil
// base uses http.DefaultTransport.
func (r *RateLimiter) RoundTripper(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &limitedRoundTripper{limiter: r, base: base}
}

type limitedRoundTripper struct {
	limiter *RateLimiter
	base    http.RoundTripper
}

func (t *limitedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	resp, err := t.base.RoundTrip(req)
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		t.limiter.RecordRateLimitError(retryAfter(resp.Header))
	}
	return resp, err
}

// Allow reports whether a request could be made right now without waiting.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return r.limiter.Allow()
}
