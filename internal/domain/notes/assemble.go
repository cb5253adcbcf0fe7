package notes

import (
	"fmt"
	"regexp"
	"strings"
)

// KeyPolicy selects the identity key used for deduplication
type KeyPolicy string

const (
	KeyTitleCategory KeyPolicy = "title_category"
	KeyTitle         KeyPolicy = "title"
)

// ParseKeyPolicy validates a policy name; empty selects the default
func ParseKeyPolicy(s string) (KeyPolicy, error) {
	switch KeyPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", KeyTitleCategory:
		return KeyTitleCategory, nil
	case KeyTitle:
		return KeyTitle, nil
	default:
		return "", fmt.Errorf("unknown dedupe key %q", s)
	}
}

// Key returns the identity key of f under the policy
func (p KeyPolicy) Key(f Feature) string {
	if p == KeyTitle {
		return f.Title
	}
	// NUL cannot appear in HTML text, so the pair never collides
	return f.Title + "\x00" + f.Category
}

var versionPattern = regexp.MustCompile(`\d+[.\-]\d+[.\-]\d+`)

// MatchVersion extracts a normalized version from s
func MatchVersion(s string) (string, bool) {
	m := versionPattern.FindString(s)
	if m == "" {
		return "", false
	}
	return strings.ReplaceAll(m, "-", "."), true
}

// ResolveVersion tries each source in order and falls back to UnknownVersion.
// Callers pass the source URL, page title and first h1 text.
func ResolveVersion(sources ...string) string {
	for _, s := range sources {
		if v, ok := MatchVersion(s); ok {
			return v
		}
	}
	return UnknownVersion
}

// Assemble deduplicates candidates in first-seen order and wraps them with
// the version. Candidates without a title are dropped.
func Assemble(candidates []Feature, version string, key KeyPolicy) *ReleaseNotes {
	if version == "" {
		version = UnknownVersion
	}

	seen := make(map[string]bool, len(candidates))
	features := make([]Feature, 0, len(candidates))
	for _, f := range candidates {
		if strings.TrimSpace(f.Title) == "" {
			continue
		}
		k := key.Key(f)
		if seen[k] {
			continue
		}
		seen[k] = true
		features = append(features, f)
	}

	return &ReleaseNotes{Version: version, Features: features}
}
