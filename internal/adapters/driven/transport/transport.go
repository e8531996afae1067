package transport

import (
	"net/http"
	"time"

	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

// DefaultTimeout bounds each HTTP request.
const DefaultTimeout = 10 * time.Second

// Config assembles a transport stack.
type Config struct {
	// Client is shared by every HTTP transport. Nil uses DefaultTimeout.
	Client *http.Client

	// UserAgent is sent with every request.
	UserAgent string

	// DisableCORS removes the CORS-capable transport from the chain.
	DisableCORS bool

	// DisableCrossDomain removes the cross-domain transport from the chain.
	DisableCrossDomain bool

	// Tokens names script callbacks. Nil uses UUIDTokens.
	Tokens driven.TokenSource

	// RequestsPerSecond throttles outbound requests. Zero disables it.
	RequestsPerSecond float64

	// CacheSize is the number of cached responses. Zero disables caching.
	CacheSize int
}

// New builds cache → fallback chain from cfg. The rate limiter sits in the
// shared HTTP client, below every member of the chain.
func New(cfg Config) (driven.ResultTransport, error) {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if cfg.RequestsPerSecond > 0 {
		limited := *client
		limited.Transport = NewRateLimiter(nil, cfg.RequestsPerSecond, 1).RoundTripper(client.Transport)
		client = &limited
	}
	tokens := cfg.Tokens
	if tokens == nil {
		tokens = UUIDTokens{}
	}

	script, err := NewScriptTransport(tokens, NewHTTPScriptLoader(client, cfg.UserAgent))
	if err != nil {
		return nil, err
	}
	chain := &Chain{Script: script}
	if !cfg.DisableCORS {
		chain.CORS = NewCORSTransport(client, cfg.UserAgent)
	}
	if !cfg.DisableCrossDomain {
		chain.CrossDomain = NewCrossDomainTransport(client, cfg.UserAgent)
	}

	var t driven.ResultTransport = chain
	if cfg.CacheSize > 0 {
		cache, err := NewCache(t, cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		t = cache
	}
	return t, nil
}
