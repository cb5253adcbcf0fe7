// Package fetch retrieves release-notes pages.
//
// HTTPFetcher downloads through the shared resty client (retries, rate
// limit and per-host circuit breaker) and sniffs the body with mimetype so
// binary downloads fail early. FileFetcher reads saved pages. Router picks
// one by scheme and Glob expands batch patterns with doublestar.
//
// Every failure is a *FetchError carrying the source and a failure kind.
package fetch
