package scraper

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const blockSeparator = "\n\n"

// Extractor gathers the description that follows a heading
type Extractor struct {
	renderer       *Renderer
	minBlockLength int
	contentCap     int
}

// NewExtractor creates an extractor with the policy's length limits
func NewExtractor(renderer *Renderer, policy Policy) *Extractor {
	return &Extractor{
		renderer:       renderer,
		minBlockLength: policy.MinBlockLength,
		contentCap:     policy.ContentCap,
	}
}

// Description renders the blocks following heading up to the next heading.
// An empty result means the heading has no body.
func (e *Extractor) Description(heading *html.Node) string {
	return e.collect(anchor(heading).NextSibling, true)
}

// Body renders the children of a container as description blocks
func (e *Extractor) Body(container *html.Node) string {
	return e.collect(container.FirstChild, false)
}

// collect walks siblings from first, merging inline runs into paragraphs
// and stopping once the accumulated text passes the content cap.
func (e *Extractor) collect(first *html.Node, stopAtHeading bool) string {
	var (
		blocks []string
		inline []*html.Node
		total  int
		full   bool
	)

	accept := func(content string) {
		content = strings.TrimSpace(content)
		if utf8.RuneCountInString(content) <= e.minBlockLength {
			return
		}
		if len(blocks) > 0 {
			total += utf8.RuneCountInString(blockSeparator)
		}
		blocks = append(blocks, content)
		total += utf8.RuneCountInString(content)
		full = e.contentCap > 0 && total > e.contentCap
	}

	flush := func() {
		if len(inline) > 0 {
			accept(e.renderer.RenderInline(inline))
			inline = inline[:0]
		}
	}

	for n := first; n != nil && !full; n = n.NextSibling {
		switch {
		case n.Type == html.TextNode:
			inline = append(inline, n)
		case n.Type != html.ElementNode || IsExcluded(n):
			continue
		case stopAtHeading && (IsHeading(n) || ContainsHeading(n)):
			flush()
			return strings.Join(blocks, blockSeparator)
		case IsInlineElement(n):
			inline = append(inline, n)
		case IsBlockElement(n) || (!stopAtHeading && IsHeading(n)):
			flush()
			if !full {
				accept(e.renderer.Render(n))
			}
		default:
			// hr, nav, form and similar break the current run without output
			flush()
		}
	}
	if !full {
		flush()
	}

	return strings.Join(blocks, blockSeparator)
}

// anchor climbs out of wrappers that hold nothing but the heading, so the
// scan starts at the node that follows the heading in document order.
func anchor(heading *html.Node) *html.Node {
	n := heading
	for nextMeaningful(n) == nil {
		p := n.Parent
		if p == nil || p.Type != html.ElementNode {
			break
		}
		switch tagName(p) {
		case "body", "html", "main", "article":
			return n
		}
		if countHeadings(p) > 1 {
			break
		}
		n = p
	}
	return n
}

func nextMeaningful(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode || (s.Type == html.TextNode && !IsEmptyText(s)) {
			return s
		}
	}
	return nil
}

func countHeadings(n *html.Node) int {
	count := 0
	var f func(*html.Node)
	f = func(n *html.Node) {
		if IsHeading(n) {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return count
}
