package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// DefaultImageAlt is used for images without alt text
const DefaultImageAlt = "Image"

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Renderer converts DOM subtrees to markdown. It holds no state besides
// the origin used for link resolution and is safe for concurrent use.
type Renderer struct {
	Origin string
}

// NewRenderer creates a renderer resolving relative URLs against origin
func NewRenderer(origin string) *Renderer {
	return &Renderer{Origin: origin}
}

// Render converts n and its subtree. n itself is treated as top level,
// so a list passed directly carries no leading newline.
func (r *Renderer) Render(n *html.Node) string {
	return tidy(r.node(n, true))
}

// RenderInline converts a run of sibling nodes as one stretch of prose
func (r *Renderer) RenderInline(nodes []*html.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if s := r.node(n, false); s != "" {
			parts = append(parts, s)
		}
	}
	return tidy(joinParts(parts))
}

func (r *Renderer) node(n *html.Node, top bool) string {
	switch n.Type {
	case html.TextNode:
		return NormalizeWhitespace(n.Data)
	case html.DocumentNode:
		return r.children(n)
	case html.ElementNode:
	default:
		return ""
	}

	if IsExcluded(n) {
		return ""
	}

	switch tag := tagName(n); tag {
	case "strong", "b":
		return wrap(r.children(n), "**")
	case "em", "i":
		return wrap(r.children(n), "*")
	case "code":
		text := strings.TrimSpace(ExtractText(n))
		if text == "" {
			return ""
		}
		return "`" + text + "`"
	case "br":
		return "\n"
	case "a":
		return r.link(n)
	case "img":
		return r.image(n)
	case "ul", "ol":
		return block(r.list(n, tag == "ol"), top, "\n")
	case "blockquote":
		return block(quote(strings.TrimSpace(r.children(n))), top, "\n")
	case "pre":
		return block(fence(n), top, "\n")
	case "p", "div", "section", "article", "figure", "details", "table", "dl",
		"h1", "h2", "h3", "h4", "h5", "h6", "header", "footer", "aside", "main":
		return block(strings.TrimSpace(r.children(n)), top, "\n\n")
	default:
		return r.children(n)
	}
}

func (r *Renderer) children(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if s := r.node(c, false); s != "" {
			parts = append(parts, s)
		}
	}
	return joinParts(parts)
}

func (r *Renderer) link(n *html.Node) string {
	text := strings.TrimSpace(r.children(n))
	if text == "" {
		return ""
	}
	href, ok := getAttr(n, "href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return text
	}
	return "[" + text + "](" + ResolveURL(r.Origin, href) + ")"
}

func (r *Renderer) image(n *html.Node) string {
	src, _ := getAttr(n, "src")
	src = strings.TrimSpace(src)

	// Lazy-loaded images keep the real URL in data-src behind a placeholder
	if src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
		for _, key := range []string{"data-src", "data-lazy-src"} {
			if alt, ok := getAttr(n, key); ok && strings.TrimSpace(alt) != "" {
				src = strings.TrimSpace(alt)
				break
			}
		}
	}
	if src == "" {
		return ""
	}

	resolved := ResolveURL(r.Origin, src)
	if IsIconImage(resolved) {
		return ""
	}

	alt, _ := getAttr(n, "alt")
	alt = NormalizeWhitespace(alt)
	if alt == "" {
		alt = DefaultImageAlt
	}
	return "![" + alt + "](" + resolved + ")"
}

func (r *Renderer) list(n *html.Node, ordered bool) string {
	var items []string
	index := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || tagName(c) != "li" {
			continue
		}
		index++
		content := r.Render(c)
		if content == "" {
			continue
		}

		prefix := "- "
		if ordered {
			prefix = strconv.Itoa(index) + ". "
		}
		items = append(items, prefix+indent(content, "  "))
	}
	return strings.Join(items, "\n")
}

func fence(n *html.Node) string {
	text := strings.Trim(ExtractText(n), "\n")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return "```\n" + text + "\n```"
}

// block marks content that must stand on its own lines when nested
func block(content string, top bool, sep string) string {
	if content == "" || top {
		return content
	}
	return sep + content + sep
}

func wrap(content, marker string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	return marker + content + marker
}

func quote(content string) string {
	if content == "" {
		return ""
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

// indent prefixes continuation lines so nested content stays inside its item
func indent(content, pad string) string {
	lines := strings.Split(content, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func joinParts(parts []string) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 && needsSpace(parts[i-1], p) {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b.String()
}

func needsSpace(prev, next string) bool {
	if strings.HasSuffix(prev, "\n") || strings.HasPrefix(next, "\n") {
		return false
	}
	// images open with "!" but are words, not punctuation
	if strings.HasPrefix(next, "![") {
		return true
	}
	r, _ := utf8.DecodeRuneInString(next)
	return !strings.ContainsRune(".,;:!?)", r)
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(excessNewlines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}
