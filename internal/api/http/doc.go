// Package http implements the API handlers: health, parse and translate.
//
// Parse accepts either inline HTML or a URL to fetch. Responses carry the
// same JSON document the CLI writes, byte for byte, plus an X-Run-ID
// header linking the response to its log entries.
package http
