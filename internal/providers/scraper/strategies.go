package scraper

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// candidate is a feature tagged with where and how it was found
type candidate struct {
	notes.Feature
	Position int
	Strategy Strategy
}

// pass holds the shared state every strategy reads
type pass struct {
	root            *goquery.Selection
	order           map[*html.Node]int
	classifications []Classification
	renderer        *Renderer
	extractor       *Extractor
	policy          Policy
}

type strategyFunc func(*pass) []candidate

// runStrategy isolates a pass so a panic in one strategy leaves the others intact
func runStrategy(name Strategy, fn strategyFunc, p *pass, logger *zap.Logger) (out []candidate) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("extraction strategy failed",
				zap.String("strategy", string(name)),
				zap.String("panic", fmt.Sprint(r)),
			)
			out = nil
		}
	}()
	return fn(p)
}

// headingPass emits one candidate per heading classified as a title
func headingPass(p *pass) []candidate {
	var out []candidate
	for _, c := range p.classifications {
		if c.Role != RoleTitle {
			continue
		}
		out = append(out, candidate{
			Feature: notes.Feature{
				Category:    c.Category,
				Title:       c.Text,
				Description: c.Description,
			},
			Position: p.order[c.Node],
			Strategy: StrategyHeading,
		})
	}
	return out
}

// classPatternPass pairs known title and body class names
func classPatternPass(p *pass) []candidate {
	var out []candidate
	for _, pair := range p.policy.ClassPairs {
		p.root.Find(pair.Title).Each(func(_ int, t *goquery.Selection) {
			title := NormalizeWhitespace(ExtractText(t.Nodes[0]))
			if utf8.RuneCountInString(title) < p.policy.MinHeadingLength {
				return
			}

			body := t.NextAllFiltered(pair.Body).First()
			if body.Length() == 0 {
				body = t.Parent().Find(pair.Body).First()
			}
			if body.Length() == 0 {
				return
			}

			description := p.extractor.Body(body.Nodes[0])
			if description == "" {
				return
			}

			pos := p.order[t.Nodes[0]]
			out = append(out, candidate{
				Feature: notes.Feature{
					Category:    p.categoryAt(pos),
					Title:       title,
					Description: description,
				},
				Position: pos,
				Strategy: StrategyClassPattern,
			})
		})
	}
	return out
}

// listEmbeddedPass treats a list item's leading bold run as its title
func listEmbeddedPass(p *pass) []candidate {
	var out []candidate
	p.root.Find("li").Each(func(_ int, li *goquery.Selection) {
		lead := leadingBold(li.Nodes[0])
		if lead == nil {
			return
		}

		title := cleanTitle(NormalizeWhitespace(ExtractText(lead)))
		if utf8.RuneCountInString(title) < p.policy.MinHeadingLength {
			return
		}

		var rest []*html.Node
		for n := lead.NextSibling; n != nil; n = n.NextSibling {
			rest = append(rest, n)
		}
		for parent := lead.Parent; parent != li.Nodes[0]; parent = parent.Parent {
			for n := parent.NextSibling; n != nil; n = n.NextSibling {
				rest = append(rest, n)
			}
		}

		description := strings.TrimSpace(strings.TrimLeft(p.renderer.RenderInline(rest), ":-–— "))
		if utf8.RuneCountInString(description) <= p.policy.MinBlockLength {
			return
		}

		pos := p.order[li.Nodes[0]]
		out = append(out, candidate{
			Feature: notes.Feature{
				Category:    p.categoryAt(pos),
				Title:       title,
				Description: description,
			},
			Position: pos,
			Strategy: StrategyListEmbedded,
		})
	})
	return out
}

// itemTitleNodes lists the nodes that open features for the enabled
// class-pattern and list-embedded strategies
func itemTitleNodes(policy Policy, root *goquery.Selection) []*html.Node {
	var nodes []*html.Node
	if policy.Enabled(StrategyClassPattern) && len(policy.ClassPairs) > 0 {
		nodes = append(nodes, root.Find(policy.classTitleSelector()).Nodes...)
	}
	if policy.Enabled(StrategyListEmbedded) {
		root.Find("li").Each(func(_ int, li *goquery.Selection) {
			lead := leadingBold(li.Nodes[0])
			if lead != nil && utf8.RuneCountInString(cleanTitle(NormalizeWhitespace(ExtractText(lead)))) >= policy.MinHeadingLength {
				nodes = append(nodes, li.Nodes[0])
			}
		})
	}
	return nodes
}

// categoryAt returns the running category in effect at document position pos
func (p *pass) categoryAt(pos int) string {
	category := notes.DefaultCategory
	for _, c := range p.classifications {
		if p.order[c.Node] >= pos {
			break
		}
		category = c.Category
	}
	return category
}

// leadingBold returns the strong or b element that opens li, looking
// through a single wrapping paragraph.
func leadingBold(li *html.Node) *html.Node {
	n := firstMeaningfulChild(li)
	if n != nil && n.Type == html.ElementNode && tagName(n) == "p" {
		n = firstMeaningfulChild(n)
	}
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	switch tagName(n) {
	case "strong", "b":
		return n
	}
	return nil
}

func firstMeaningfulChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.CommentNode || IsEmptyText(c) {
			continue
		}
		return c
	}
	return nil
}

func cleanTitle(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, ":-–— "))
}

// documentOrder numbers every node under root in preorder
func documentOrder(root *html.Node) map[*html.Node]int {
	order := make(map[*html.Node]int)
	i := 0
	var f func(*html.Node)
	f = func(n *html.Node) {
		order[n] = i
		i++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(root)
	return order
}

// mergeCandidates orders all strategy output by document position. Ties
// keep strategy order, so heading results win over alternates at a node.
func mergeCandidates(groups ...[]candidate) []notes.Feature {
	var all []candidate
	for _, g := range groups {
		all = append(all, g...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Position < all[j].Position
	})

	features := make([]notes.Feature, 0, len(all))
	for _, c := range all {
		features = append(features, c.Feature)
	}
	return features
}
