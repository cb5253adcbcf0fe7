// Package notes holds the release-notes document model.
//
// A ReleaseNotes value is built once per parse run: the scraper collects
// Feature candidates in document order, Assemble removes duplicates by the
// configured identity key and resolves the version, and the result is
// serialized without further mutation.
//
// Identity Keys:
//   - KeyTitleCategory: (title, category) pair, the default
//   - KeyTitle: title alone, first category wins
//
// Version Resolution:
//   - source URL, then page title, then first h1, then "Unknown"
//   - pattern \d+[.-]\d+[.-]\d+ with hyphens normalized to dots
//
// Example Usage:
//
//	rn := notes.Assemble(features, notes.ResolveVersion(url, title, h1), notes.KeyTitleCategory)
//	data, err := notes.Marshal(rn)
package notes
