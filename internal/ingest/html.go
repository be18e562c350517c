package ingest

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseDocument parses a rendered page
func ParseDocument(body string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// Text returns the selection's text with leftover entities decoded and runs
// of whitespace collapsed to single spaces
func Text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(html.UnescapeString(sel.Text())), " ")
}

// Require returns the first match of selector under root, or an error naming
// the missing container
func Require(root *goquery.Selection, selector string) (*goquery.Selection, error) {
	sel := root.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("page has no %q container", selector)
	}
	return sel, nil
}
