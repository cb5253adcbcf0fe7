// Package translate machine-translates release notes through an
// OpenAI-compatible chat-completions API.
//
// OpenAI sends one request per text on the shared resty client, so calls
// are rate limited and guarded by the per-host circuit breaker.
// TranslateNotes degrades per feature: a failed call leaves a
// "[translation failed: ...]" marker followed by the original text.
package translate
