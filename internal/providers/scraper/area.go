package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
)

// FindContentArea returns the first XPath match that holds at least one
// heading, together with the expression that matched. ErrNoContentArea
// is returned with the document body when nothing qualifies.
func FindContentArea(doc *goquery.Document, xpaths []string, headingSelector string) (*goquery.Selection, string, error) {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		body = doc.Selection
	}
	if len(doc.Nodes) == 0 {
		return body, "body", ErrNoContentArea
	}

	var invalid []string
	for _, expr := range xpaths {
		nodes, err := htmlquery.QueryAll(doc.Nodes[0], expr)
		if err != nil {
			invalid = append(invalid, expr)
			continue
		}
		for _, n := range nodes {
			area := doc.FindNodes(n)
			if area.Find(headingSelector).Length() > 0 {
				return area, expr, nil
			}
		}
	}

	if len(invalid) > 0 {
		return body, "body", fmt.Errorf("%w (invalid xpath: %v)", ErrNoContentArea, invalid)
	}
	return body, "body", ErrNoContentArea
}
