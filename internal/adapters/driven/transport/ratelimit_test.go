package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geosearch/internal/core/domain"
)

func TestRateLimiter_PassesThrough(t *testing.T) {
	next := &MockTransport{}
	rl := NewRateLimiter(next, 0, 0)

	for i := 0; i < 5; i++ {
		_, err := rl.Fetch(context.Background(), "https://x.test")
		require.NoError(t, err)
	}
	assert.Equal(t, 5, next.Calls())
}

func TestRateLimiter_Throttles(t *testing.T) {
	rl := NewRateLimiter(&MockTransport{}, 1, 1)

	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow(), "bucket empty until the next second")
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	rl := NewRateLimiter(&MockTransport{}, 0.001, 1)
	require.True(t, rl.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := rl.Fetch(ctx, "https://x.test")

	var te *domain.TransportError
	assert.ErrorAs(t, err, &te)
}

func TestRateLimiter_BacksOffAfter429(t *testing.T) {
	next := &MockTransport{FetchFunc: func(context.Context, string) (json.RawMessage, error) {
		return nil, &domain.HTTPError{Status: 429, RetryAfter: time.Hour}
	}}
	rl := NewRateLimiter(next, 0, 0)

	_, err := rl.Fetch(context.Background(), "https://x.test")

	assert.True(t, domain.IsHTTPStatus(err, 429))
	assert.False(t, rl.Allow(), "backoff in effect")
}

func TestRateLimiter_RecordDefaultBackoff(t *testing.T) {
	rl := NewRateLimiter(&MockTransport{}, 0, 0)
	rl.RecordRateLimitError(0)

	rl.mu.Lock()
	retryAt := rl.retryAt
	rl.mu.Unlock()
	assert.WithinDuration(t, time.Now().Add(defaultBackoff), retryAt, time.Second)
}

func TestRateLimiter_RoundTripperGatesEachRequest(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	rl := NewRateLimiter(nil, 0.001, 1)
	client := &http.Client{Transport: rl.RoundTripper(srv.Client().Transport)}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	_, err = client.Do(req)

	assert.Error(t, err)
	assert.Equal(t, int64(1), hits.Load())
}

func TestRateLimiter_RoundTripperBacksOffAfter429(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	rl := NewRateLimiter(nil, 0, 0)
	client := &http.Client{Transport: rl.RoundTripper(nil)}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.False(t, rl.Allow(), "backoff in effect")
}
