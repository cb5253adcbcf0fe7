package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageMeta holds the document-level hints used for version and origin
// resolution
type PageMeta struct {
	Title     string
	H1        string
	Canonical string
	OGURL     string
	OGTitle   string
}

// ExtractPageMeta reads the title, first h1, canonical link and Open Graph
// tags from doc
func ExtractPageMeta(doc *goquery.Document) PageMeta {
	meta := PageMeta{
		Title:     NormalizeWhitespace(doc.Find("title").First().Text()),
		H1:        NormalizeWhitespace(doc.Find("h1").First().Text()),
		Canonical: strings.TrimSpace(doc.Find("link[rel='canonical']").First().AttrOr("href", "")),
	}

	doc.Find("meta[property^='og:']").Each(func(_ int, s *goquery.Selection) {
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}
		switch s.AttrOr("property", "") {
		case "og:url":
			meta.OGURL = content
		case "og:title":
			meta.OGTitle = content
		}
	})
	return meta
}

// VersionSources lists the strings searched for a version, most
// authoritative first. The page URL always leads.
func (m PageMeta) VersionSources(pageURL string) []string {
	return []string{pageURL, m.Title, m.H1, m.Canonical, m.OGURL, m.OGTitle}
}

// Origin returns the first origin derivable from the page URL, the
// canonical link or og:url
func (m PageMeta) Origin(pageURL string) string {
	for _, u := range []string{pageURL, m.Canonical, m.OGURL} {
		if o := OriginOf(u); o != "" {
			return o
		}
	}
	return ""
}
