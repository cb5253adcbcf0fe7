// Package publish turns release notes into discussion comments.
//
// Each feature becomes one markdown comment. Translated features carry the
// original English text in a collapsible <details> block. Preview renders
// a whole thread to sanitized HTML with goldmark and bluemonday.
package publish
