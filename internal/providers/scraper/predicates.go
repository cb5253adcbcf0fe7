package scraper

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// DefaultNavigationTerms are heading texts that never denote content
var DefaultNavigationTerms = []string{"table of contents", "navigation", "menu", "search"}

// Substrings that mark decorative images
var iconImageMarkers = []string{"logo", "icon", "data:"}

var blockElements = map[string]bool{
	"p": true, "ul": true, "ol": true, "div": true, "section": true,
	"blockquote": true, "pre": true, "article": true, "figure": true,
	"details": true, "table": true, "dl": true,
}

var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "br": true, "code": true, "em": true,
	"i": true, "img": true, "kbd": true, "mark": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true, "u": true,
	"time": true, "s": true, "del": true, "ins": true,
}

var excludedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
}

// IsNavigationalHeading reports whether text matches a navigation term
func IsNavigationalHeading(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// IsIconImage reports whether an image URL looks like a logo, icon or inline data URI
func IsIconImage(src string) bool {
	lower := strings.ToLower(src)
	for _, marker := range iconImageMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// HeadingRank returns 1-6 for h1-h6 elements and 0 otherwise
func HeadingRank(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode || len(n.Data) != 2 {
		return 0
	}
	if n.Data[0] != 'h' && n.Data[0] != 'H' {
		return 0
	}
	if d := n.Data[1]; d >= '1' && d <= '6' {
		return int(d - '0')
	}
	return 0
}

// IsHeading reports whether n is an h1-h6 element
func IsHeading(n *html.Node) bool {
	return HeadingRank(n) > 0
}

// ContainsHeading reports whether any descendant of n is a heading
func ContainsHeading(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsHeading(c) || ContainsHeading(c) {
			return true
		}
	}
	return false
}

// IsBlockElement reports whether n is rendered as its own description block
func IsBlockElement(n *html.Node) bool {
	return n.Type == html.ElementNode && blockElements[tagName(n)]
}

// IsInlineElement reports whether n joins the surrounding run of prose
func IsInlineElement(n *html.Node) bool {
	return n.Type == html.ElementNode && inlineElements[tagName(n)]
}

// IsExcluded reports whether n produces no output at all
func IsExcluded(n *html.Node) bool {
	return n.Type == html.ElementNode && excludedElements[tagName(n)]
}

// IsSubstantial reports whether n is an element carrying more than
// minLength characters of text. Rules (br, hr) never count.
func IsSubstantial(n *html.Node, minLength int) bool {
	if n.Type != html.ElementNode || IsExcluded(n) {
		return false
	}
	switch tagName(n) {
	case "br", "hr":
		return false
	}
	return utf8.RuneCountInString(NormalizeWhitespace(ExtractText(n))) > minLength
}

// IsEmptyText reports whether n is a text node holding only whitespace
func IsEmptyText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

func tagName(n *html.Node) string {
	return strings.ToLower(n.Data)
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}
