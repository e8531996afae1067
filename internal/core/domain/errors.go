package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Domain errors represent geosearch failures.
// Typed errors below wrap the underlying cause so callers can use errors.As.
var (
	// ErrNoProvider indicates the control was built without a lookup provider.
	ErrNoProvider = errors.New("no lookup provider configured")

	// ErrEmptyQuery indicates a search was requested with no text.
	ErrEmptyQuery = errors.New("empty query")

	// ErrTransportUnavailable indicates no transport in the chain can serve a request.
	ErrTransportUnavailable = errors.New("no transport available")

	// ErrInvalidConfig indicates a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownSetting indicates a configuration key is not recognised.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrUnsupportedProvider indicates an unknown provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider")
)

// ProviderBuildError is raised while constructing a query or URL, or when a
// provider panics.
type ProviderBuildError struct {
	Provider string
	Err      error
}

func (e *ProviderBuildError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("provider: %v", e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderBuildError) Unwrap() error { return e.Err }

// TransportError is a network or cross-origin failure.
type TransportError struct {
	Transport string
	URL       string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport: %v", e.Transport, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx status that does not trigger a fallback.
type HTTPError struct {
	Status int
	Body   string

	// RetryAfter is the server's Retry-After hint, if any.
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("http status %d", e.Status)
	}
	return fmt.Sprintf("http status %d: %s", e.Status, body)
}

// ParseError is a malformed response body.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsHTTPStatus reports whether err is an HTTPError with the given status.
func IsHTTPStatus(err error, status int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == status
}
