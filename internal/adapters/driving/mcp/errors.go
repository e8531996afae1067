// Package mcp provides an MCP (Model Context Protocol) server adapter for geosearch.
// It lets AI assistants resolve place names to coordinates.
package mcp

import "errors"

// ErrMissingLookupService is returned when the lookup service is not provided.
var ErrMissingLookupService = errors.New("mcp: lookup service is required")
