package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	// MaxHTMLSize limits HTML input to 10MB to prevent memory exhaustion
	MaxHTMLSize = 10 * 1024 * 1024
)

var (
	// ErrInvalidHTML is returned for empty or oversized input
	ErrInvalidHTML = errors.New("invalid html")

	// ErrNoContentArea means no configured content container matched;
	// callers degrade to scanning the whole body.
	ErrNoContentArea = errors.New("content area not found")
)

// ValidateHTML checks HTML size and returns error if too large
func ValidateHTML(htmlStr string) error {
	if strings.TrimSpace(htmlStr) == "" {
		return fmt.Errorf("%w: html content required", ErrInvalidHTML)
	}
	if len(htmlStr) > MaxHTMLSize {
		return fmt.Errorf("%w: html exceeds maximum size of %d bytes", ErrInvalidHTML, MaxHTMLSize)
	}
	return nil
}

// DetectCharset detects and returns charset from HTML bytes
func DetectCharset(data []byte) string {
	if utf8.Valid(data) {
		return "utf-8"
	}
	detector := chardet.NewHtmlDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// LoadHTML parses HTML, converting legacy encodings to UTF-8 first
func LoadHTML(htmlStr string) (*goquery.Document, error) {
	if err := ValidateHTML(htmlStr); err != nil {
		return nil, err
	}

	data := []byte(htmlStr)
	detected := DetectCharset(data)
	if detected == "utf-8" {
		return goquery.NewDocumentFromReader(bytes.NewReader(data))
	}

	utf8Reader, err := charset.NewReader(bytes.NewReader(data), "text/html; charset="+detected)
	if err != nil {
		// Fallback to direct parsing
		return goquery.NewDocumentFromReader(bytes.NewReader(data))
	}
	return goquery.NewDocumentFromReader(utf8Reader)
}

// ExtractText concatenates the text nodes under n, skipping scripts and styles
func ExtractText(n *html.Node) string {
	var buf bytes.Buffer
	var f func(*html.Node)
	f = func(n *html.Node) {
		if IsExcluded(n) {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return strings.TrimSpace(buf.String())
}

// NormalizeWhitespace collapses multiple spaces into one
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateText truncates text to maxLen characters with an ellipsis
func TruncateText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen || maxLen < 4 {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
