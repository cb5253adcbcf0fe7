// Package server assembles the gin router for serve mode: request ids,
// access logs, metrics, CORS and rate limiting in front of the /health,
// /v1 and /metrics routes.
package server
