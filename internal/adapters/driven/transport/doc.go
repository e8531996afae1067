// Package transport implements driven.ResultTransport.
//
// Chain tries a CORS-capable HTTP transport first and falls back to a
// script-injection (JSONP) transport when the server answers with status 0
// or 400. When the CORS transport is disabled a cross-domain transport that
// ignores status codes is used instead. RateLimiter and Cache wrap any
// transport; New assembles the stack from configuration.
package transport
