package scraper

import (
	"net/url"
	"strings"
)

var absolutePrefixes = []string{"http://", "https://", "mailto:", "#"}

// ResolveURL makes raw absolute against the site origin. Values with a
// known scheme or a fragment are returned unchanged.
func ResolveURL(origin, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || origin == "" {
		return raw
	}

	lower := strings.ToLower(raw)
	for _, prefix := range absolutePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return raw
		}
	}

	origin = strings.TrimRight(origin, "/")
	switch {
	case strings.HasPrefix(raw, "//"):
		scheme := "https:"
		if i := strings.Index(origin, "://"); i > 0 {
			scheme = origin[:i+1]
		}
		return scheme + raw
	case strings.HasPrefix(raw, "/"):
		return origin + raw
	default:
		return origin + "/" + raw
	}
}

// OriginOf returns scheme://host of rawURL, or "" when it has neither
func OriginOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
