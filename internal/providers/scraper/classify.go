package scraper

import (
	"unicode/utf8"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
	"golang.org/x/net/html"
)

// Role is the structural meaning inferred for a heading
type Role int

const (
	RoleCategory Role = iota
	RoleTitle
)

// String returns the string representation of the role
func (r Role) String() string {
	switch r {
	case RoleCategory:
		return "category"
	case RoleTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Heading is a heading node with its normalized text
type Heading struct {
	Node *html.Node
	Text string
	Rank int
}

// Classification is the outcome for one heading. Category is the running
// category after this heading was processed; Description is set for titles.
type Classification struct {
	Heading
	Role        Role
	Category    string
	Description string
}

// Classifier assigns category or title roles to a heading sequence
type Classifier struct {
	policy    Policy
	extractor *Extractor
	// items holds nodes that open class-pattern or list-embedded features
	items map[*html.Node]bool
}

// NewClassifier creates a classifier that extracts title bodies with extractor
func NewClassifier(policy Policy, extractor *Extractor) *Classifier {
	return &Classifier{policy: policy, extractor: extractor}
}

// WithItemTitles marks nodes that open class-pattern or list-embedded
// features. A heading whose section starts with such items groups them
// and is classified as a category.
func (c *Classifier) WithItemTitles(nodes []*html.Node) *Classifier {
	c.items = make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		c.items[n] = true
	}
	return c
}

// Headings filters raw heading nodes down to those worth classifying.
// Short, empty and navigational headings are skipped silently.
func (c *Classifier) Headings(nodes []*html.Node) []Heading {
	out := make([]Heading, 0, len(nodes))
	for _, n := range nodes {
		rank := HeadingRank(n)
		if rank == 0 || !c.policy.usesRank(rank) {
			continue
		}
		text := NormalizeWhitespace(ExtractText(n))
		if utf8.RuneCountInString(text) < c.policy.MinHeadingLength {
			continue
		}
		if IsNavigationalHeading(text, c.policy.NavigationTerms) {
			continue
		}
		out = append(out, Heading{Node: n, Text: text, Rank: rank})
	}
	return out
}

// Classify walks headings in document order, threading the current
// category through the sequence as fold state.
func (c *Classifier) Classify(headings []Heading) []Classification {
	out := make([]Classification, 0, len(headings))
	category := notes.DefaultCategory

	for i, h := range headings {
		var next *Heading
		if i+1 < len(headings) {
			next = &headings[i+1]
		}

		role := c.initialRole(h, next)

		var description string
		if role == RoleTitle {
			description = c.extractor.Description(h.Node)
			if description == "" {
				role = RoleCategory
			}
		}
		if role == RoleCategory {
			category = h.Text
		}

		out = append(out, Classification{
			Heading:     h,
			Role:        role,
			Category:    category,
			Description: description,
		})
	}
	return out
}

// initialRole applies the rank policy, then the adjacency heuristic
func (c *Classifier) initialRole(h Heading, next *Heading) Role {
	switch {
	case containsInt(c.policy.CategoryRanks, h.Rank):
		return RoleCategory
	case containsInt(c.policy.TitleRanks, h.Rank):
		return RoleTitle
	case c.IntroducesItems(h.Node):
		return RoleCategory
	case next == nil:
		return RoleTitle
	}

	nested := next.Rank > h.Rank || (c.policy.CategoryOnEqualRank && next.Rank == h.Rank)
	if nested && CountSubstantialBetween(h.Node, next.Node, c.policy.SubstantialLength) < c.policy.AdjacencyThreshold {
		return RoleCategory
	}
	return RoleTitle
}

// CountSubstantialBetween counts substantial elements after from and
// before to, scanning from's siblings in document order.
func CountSubstantialBetween(from, to *html.Node, minLength int) int {
	count := 0
	for n := anchor(from).NextSibling; n != nil; n = n.NextSibling {
		if n == to || IsHeading(n) || ContainsHeading(n) {
			break
		}
		if IsSubstantial(n, minLength) {
			count++
		}
	}
	return count
}

// IntroducesItems reports whether the section after heading opens with
// class-pattern or list-embedded items, before any other substantial
// content or the next heading.
func (c *Classifier) IntroducesItems(heading *html.Node) bool {
	if len(c.items) == 0 {
		return false
	}
	for n := anchor(heading).NextSibling; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		if c.marked(n) {
			return true
		}
		if IsHeading(n) || ContainsHeading(n) || IsSubstantial(n, c.policy.SubstantialLength) {
			return false
		}
	}
	return false
}

func (c *Classifier) marked(n *html.Node) bool {
	if c.items[n] {
		return true
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if c.marked(ch) {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
