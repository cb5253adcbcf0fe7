// Package client provides the outbound HTTP client shared by the page
// fetcher and the translator.
//
// Built on go-resty/resty over a hashicorp/go-retryablehttp transport:
//   - Automatic retries with exponential backoff on connection errors, 5xx and 429
//   - Token-bucket rate limiting (golang.org/x/time/rate)
//   - One circuit breaker per remote host
//   - Context-based cancellation
//
// Example Usage:
//
//	c := client.New(client.DefaultOptions("fetch"))
//	resp, err := c.Execute(ctx, http.MethodGet, url, nil)
package client
