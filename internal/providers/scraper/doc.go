// Package scraper extracts release-note features from loosely structured HTML.
//
// This package is organized into specialized modules:
//   - markdown: DOM subtree to markdown (inline formatting, links, images, lists)
//   - content: description blocks following a heading, with length caps
//   - classify: category-versus-title inference over the heading sequence
//   - strategies: heading, class-pattern and list-embedded passes
//   - area: content container lookup via XPath
//   - policy: tunable thresholds and rank mapping (YAML or TOML)
//   - predicates: named heuristics such as IsNavigationalHeading and IsIconImage
//
// Built on specialized libraries:
//   - goquery: jQuery-like CSS selectors
//   - htmlquery: XPath support for HTML
//   - chardet: Character encoding detection
//
// Every strategy is an independent, order-preserving pass. Results are
// merged by document position before deduplication, so the output follows
// the page order regardless of which pass found a feature.
//
// Example Usage:
//
//	parser := scraper.NewParser(scraper.DefaultPolicy(), logger)
//	result, err := parser.Parse(scraper.Input{HTML: page, URL: pageURL})
package scraper
