package transport

import "errors"

// Package errors.
var (
	// ErrFallThrough is returned by the CORS transport when the response
	// status means the script-injection transport should be tried.
	ErrFallThrough = errors.New("transport: fall through to script injection")

	// ErrNoTokenSource indicates a script transport was built without tokens.
	ErrNoTokenSource = errors.New("transport: token source is required")
)
