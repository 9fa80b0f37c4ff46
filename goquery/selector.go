// Package goquery implements bookshelf.Selector on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bookshelf"
	"golang.org/x/net/html"
)

var _ bookshelf.Selector = (*Selector)(nil)

// Selector answers element and text queries using CSS selectors.
// It is stateless and safe for concurrent use.
type Selector struct{}

// NewSelector creates a new Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Attr returns the values of attr on every element matching tag, in document order.
// Elements without the attribute are skipped; empty values are kept.
func (s *Selector) Attr(markup string, tag string, attr string) ([]string, error) {
	doc, err := parse(markup)
	if err != nil {
		return nil, err
	}

	var values []string
	doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
		if v, ok := sel.Attr(attr); ok {
			values = append(values, v)
		}
	})
	return values, nil
}

// Text returns the direct child text nodes of the elements matching tag
// whose position is accepted by keep. A nil keep accepts every element.
// Nested markup (e.g. <b> inside <p>) does not contribute text.
func (s *Selector) Text(markup string, tag string, keep bookshelf.PositionFunc) ([]string, error) {
	doc, err := parse(markup)
	if err != nil {
		return nil, err
	}

	matches := doc.Find(tag)
	total := matches.Length()

	var texts []string
	matches.Each(func(i int, sel *goquery.Selection) {
		if keep != nil && !keep(i, total) {
			return
		}
		for _, n := range sel.Nodes {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					texts = append(texts, c.Data)
				}
			}
		}
	})
	return texts, nil
}

func parse(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, bookshelf.Errorf(bookshelf.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}
