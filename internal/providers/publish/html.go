package publish

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts comment markdown to sanitized HTML
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer. Raw HTML in the markdown is kept by
// goldmark and then filtered by the UGC policy, so <details> folds
// survive while scripts and handlers do not.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowElements("details", "summary")
	policy.AllowAttrs("open").OnElements("details")

	return &Renderer{md: md, policy: policy}
}

// HTML renders one markdown document
func (r *Renderer) HTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Preview renders a thread as a standalone HTML page
func (r *Renderer) Preview(t Thread) (string, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(t.Title))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(t.Title))

	for i, c := range t.Comments {
		body, err := r.HTML(c.Body)
		if err != nil {
			return "", fmt.Errorf("comment %d: %w", i+1, err)
		}
		fmt.Fprintf(&b, "<article class=\"comment\" id=\"comment-%d\">\n%s</article>\n", i+1, body)
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
