package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoControl indicates that the search control has not been built.
	ErrNoControl = errors.New("search control is not available")
)
