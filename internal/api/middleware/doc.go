// Package middleware provides the gin middleware of the API server:
// CORS, per-client rate limiting, and request ids with access logging.
package middleware
