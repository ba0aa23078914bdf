package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// active element selectors stripped from layout bodies before parsing
var strippedSelectors = []string{"script", "iframe", "object", "embed", "form"}

// Sanitize removes active content from a layout's HTML body: script-like
// elements and inline event handler attributes. Layout bodies come from the
// catalog today, but user-supplied layouts go through the same path.
func Sanitize(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", err
	}

	for _, sel := range strippedSelectors {
		doc.Find(sel).Remove()
	}

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			attrs := node.Attr[:0]
			for _, a := range node.Attr {
				if strings.HasPrefix(strings.ToLower(a.Key), "on") {
					continue
				}
				if a.Key == "href" && strings.HasPrefix(strings.TrimSpace(strings.ToLower(a.Val)), "javascript:") {
					continue
				}
				attrs = append(attrs, a)
			}
			node.Attr = attrs
		}
	})

	return doc.Html()
}
