// Package main is the relnotes command.
//
// relnotes scrapes release-notes pages into a normalized JSON document,
// optionally machine-translates it, and renders discussion comments.
//
// Usage:
//
//	# One page to stdout
//	relnotes parse https://docs.example.com/release-notes/release-129-0-0
//
//	# Saved pages, four at a time, gzip output per page
//	relnotes parse --glob 'pages/**/*.html' --out out/ --gzip
//
//	# Translate and render comments
//	relnotes translate notes.json --out notes.ja.json
//	relnotes publish notes.ja.json --out comments/ --html preview.html
//
//	# HTTP API
//	relnotes serve --port 8000
//
// Configuration comes from environment variables (see
// internal/infrastructure/config); flags override them.
//
// Exit codes: 0 on success, 2 when a page could not be fetched, 1 for any
// other error.
package main
