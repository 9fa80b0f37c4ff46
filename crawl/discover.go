package crawl

import (
	"context"
	"strings"
)

// ListCategories returns the category links on the catalog root page.
// Static pages (".htm") and popularity listings ("/pop/") are skipped.
func (c *Crawler) ListCategories(ctx context.Context, rootURL string) ([]string, error) {
	links, err := c.pageLinks(ctx, rootURL)
	if err != nil {
		return nil, err
	}

	var categories []string
	for _, link := range links {
		if isNavigationLink(link) {
			continue
		}
		categories = append(categories, link)
	}
	return categories, nil
}

// ListBooks returns the book links on a category page: every link under the
// category URL, in document order.
func (c *Crawler) ListBooks(ctx context.Context, categoryURL string) ([]string, error) {
	links, err := c.pageLinks(ctx, categoryURL)
	if err != nil {
		return nil, err
	}
	return withPrefix(links, categoryURL), nil
}

func isNavigationLink(link string) bool {
	return strings.HasSuffix(link, ".htm") || strings.HasSuffix(link, "/pop/")
}
