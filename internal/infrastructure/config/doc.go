// Package config provides 12-factor configuration for relnotes.
//
// Configuration is loaded from environment variables with defaults.
// CLI flags override environment values.
//
// Configuration Sections:
//   - Fetch: timeout, user agent, retries and request rate for page downloads
//   - Scraper: base origin override and extraction policy file
//   - Translate: chat-completions endpoint, model and target language
//   - Server: HTTP API listen address
//   - Logging: log level and output format
//   - Batch: concurrent pages in glob mode
//   - RateLimit: per-IP API rate limiting
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
package config
