// Package pipeline runs the fetch, parse and translate stages for one page
// or a batch of pages.
//
// Every page is its own run with a ULID run id that tags its log entries.
// Batch runs pages concurrently with an errgroup limited to the
// configured concurrency; a failed page does not stop the others.
package pipeline
