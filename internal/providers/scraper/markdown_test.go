package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const testOrigin = "https://example.com"

// firstNode loads src and returns the first node matching selector
func firstNode(t *testing.T, src, selector string) *html.Node {
	t.Helper()
	doc, err := LoadHTML(src)
	require.NoError(t, err)
	sel := doc.Find(selector)
	require.NotZero(t, sel.Length(), "selector %q matched nothing", selector)
	return sel.Nodes[0]
}

func TestRenderInline(t *testing.T) {
	r := NewRenderer(testOrigin)

	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "strong and emphasis",
			html:     `<p>Use <strong>bold</strong> and <em>italic</em> text</p>`,
			expected: "Use **bold** and *italic* text",
		},
		{
			name:     "b and i aliases",
			html:     `<p><b>Heavy</b> <i>slanted</i></p>`,
			expected: "**Heavy** *slanted*",
		},
		{
			name:     "empty strong dropped",
			html:     `<p>Text <strong> </strong>end</p>`,
			expected: "Text end",
		},
		{
			name:     "inline code",
			html:     `<p>Run <code> ls -la </code> now</p>`,
			expected: "Run `ls -la` now",
		},
		{
			name:     "line break",
			html:     `<p>line one<br>line two</p>`,
			expected: "line one\nline two",
		},
		{
			name:     "no space before punctuation",
			html:     `<p>Supports <strong>IAM</strong>.</p>`,
			expected: "Supports **IAM**.",
		},
		{
			name:     "exclamation stays attached",
			html:     `<p>Ship it <b>now</b>!</p>`,
			expected: "Ship it **now**!",
		},
		{
			name:     "script skipped",
			html:     `<p>Visible<script>alert(1)</script></p>`,
			expected: "Visible",
		},
		{
			name:     "whitespace collapsed",
			html:     "<p>  spread \n\t across   lines </p>",
			expected: "spread across lines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := firstNode(t, tt.html, "p")
			assert.Equal(t, tt.expected, r.Render(n))
		})
	}
}

func TestRenderLinks(t *testing.T) {
	r := NewRenderer(testOrigin)

	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{"root relative", `<p><a href="/docs/x">text</a></p>`, "[text](https://example.com/docs/x)"},
		{"bare relative", `<p><a href="guide.html">guide</a></p>`, "[guide](https://example.com/guide.html)"},
		{"absolute kept", `<p><a href="https://other.com/y">other</a></p>`, "[other](https://other.com/y)"},
		{"mailto kept", `<p><a href="mailto:a@b.c">mail</a></p>`, "[mail](mailto:a@b.c)"},
		{"fragment kept", `<p><a href="#top">top</a></p>`, "[top](#top)"},
		{"no href", `<p><a>plain</a></p>`, "plain"},
		{"empty text dropped", `<p>before <a href="/x"> </a>after</p>`, "before after"},
		{"formatted text", `<p><a href="/x"><strong>Bold</strong> link</a></p>`, "[**Bold** link](https://example.com/x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Render(firstNode(t, tt.html, "p")))
		})
	}
}

func TestRenderImages(t *testing.T) {
	r := NewRenderer(testOrigin)

	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "content image",
			html:     `<p><img src="/wp-content/uploads/a.png" alt="Diagram"></p>`,
			expected: "![Diagram](https://example.com/wp-content/uploads/a.png)",
		},
		{
			name:     "default alt",
			html:     `<p><img src="https://cdn.example.com/shot.png"></p>`,
			expected: "![Image](https://cdn.example.com/shot.png)",
		},
		{
			name:     "logo filtered",
			html:     `<p><img src="/assets/logo.svg" alt="Brand"></p>`,
			expected: "",
		},
		{
			name:     "icon filtered",
			html:     `<p><img src="/img/Icon-check.png" alt="ok"></p>`,
			expected: "",
		},
		{
			name:     "inline data filtered",
			html:     `<p><img src="data:image/png;base64,AAAA" alt="pixel"></p>`,
			expected: "",
		},
		{
			name:     "lazy loaded",
			html:     `<p><img src="data:image/gif;base64,R0lG" data-src="/media/real.png" alt="Real"></p>`,
			expected: "![Real](https://example.com/media/real.png)",
		},
		{
			name:     "protocol relative",
			html:     `<p><img src="//cdn.example.com/pic.jpg" alt="Pic"></p>`,
			expected: "![Pic](https://cdn.example.com/pic.jpg)",
		},
		{
			name:     "image inside prose",
			html:     `<p>See the chart <img src="https://example.com/a.png" alt="Chart"> for details</p>`,
			expected: "See the chart ![Chart](https://example.com/a.png) for details",
		},
		{
			name:     "image after link",
			html:     `<p><a href="https://other.com/y">abs</a> <img src="/wp-content/uploads/d.png" alt="Diagram"></p>`,
			expected: "[abs](https://other.com/y) ![Diagram](https://example.com/wp-content/uploads/d.png)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Render(firstNode(t, tt.html, "p")))
		})
	}
}

func TestRenderBlocks(t *testing.T) {
	r := NewRenderer(testOrigin)

	tests := []struct {
		name     string
		html     string
		selector string
		expected string
	}{
		{
			name:     "unordered list",
			html:     `<ul><li>One</li><li>Two <strong>bold</strong></li></ul>`,
			selector: "ul",
			expected: "- One\n- Two **bold**",
		},
		{
			name:     "ordered list",
			html:     `<ol><li>First</li><li>Second</li></ol>`,
			selector: "ol",
			expected: "1. First\n2. Second",
		},
		{
			name:     "nested list indented",
			html:     `<ul><li>Parent<ul><li>Child</li></ul></li></ul>`,
			selector: "ul",
			expected: "- Parent\n  - Child",
		},
		{
			name:     "list inside container",
			html:     `<div>Intro text<ul><li>A</li></ul></div>`,
			selector: "div",
			expected: "Intro text\n- A",
		},
		{
			name:     "blockquote",
			html:     `<blockquote><p>Quoted text</p></blockquote>`,
			selector: "blockquote",
			expected: "> Quoted text",
		},
		{
			name:     "paragraphs in container",
			html:     `<div><p>First paragraph</p><p>Second paragraph</p></div>`,
			selector: "div",
			expected: "First paragraph\n\nSecond paragraph",
		},
		{
			name:     "preformatted",
			html:     "<pre>make build\nmake test</pre>",
			selector: "pre",
			expected: "```\nmake build\nmake test\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Render(firstNode(t, tt.html, tt.selector)))
		})
	}
}

func TestRenderWithoutOrigin(t *testing.T) {
	r := NewRenderer("")
	n := firstNode(t, `<p><a href="/docs">docs</a></p>`, "p")
	assert.Equal(t, "[docs](/docs)", r.Render(n))
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		origin   string
		raw      string
		expected string
	}{
		{testOrigin, "/a/b", "https://example.com/a/b"},
		{testOrigin, "a/b", "https://example.com/a/b"},
		{testOrigin, "//cdn.example.com/x", "https://cdn.example.com/x"},
		{"http://example.com", "//cdn.example.com/x", "http://cdn.example.com/x"},
		{testOrigin, "http://plain.com", "http://plain.com"},
		{testOrigin, "https://secure.com", "https://secure.com"},
		{testOrigin, "mailto:x@y.z", "mailto:x@y.z"},
		{testOrigin, "#frag", "#frag"},
		{"", "/a", "/a"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveURL(tt.origin, tt.raw))
		})
	}
}

func TestOriginOf(t *testing.T) {
	assert.Equal(t, "https://docs.example.com", OriginOf("https://docs.example.com/release/1-2-3?x=1"))
	assert.Equal(t, "", OriginOf(""))
	assert.Equal(t, "", OriginOf("not a url"))
}
