// Package providers groups the adapters behind the release-notes pipeline.
//
//   - scraper: HTML to structured release notes
//   - fetch: page retrieval over HTTP or from disk
//   - http/client: shared resty client with retries, rate limit and
//     per-host circuit breakers
//   - translate: chat-completions translation
//   - publish: discussion comments and HTML previews
package providers
