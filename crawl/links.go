package crawl

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/bookshelf"
)

// pageLinks fetches pageURL and returns its distinct outgoing links,
// resolved to absolute URLs, in document order.
func (c *Crawler) pageLinks(ctx context.Context, pageURL string) ([]string, error) {
	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	hrefs, err := c.Selector.Attr(html, "a", "href")
	if err != nil {
		return nil, err
	}

	return resolveLinks(pageURL, hrefs)
}

// resolveLinks resolves hrefs against baseURL and strips fragments.
// Non-HTTP links, links back to the base page and repeated links are dropped.
func resolveLinks(baseURL string, hrefs []string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, bookshelf.Errorf(bookshelf.EINVALID, "invalid page URL %q: %v", baseURL, err)
	}
	self := *base
	self.Fragment = ""

	seen := make(map[string]bool, len(hrefs))
	var links []string
	for _, href := range hrefs {
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			continue
		}

		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			continue
		}
		resolved.Fragment = ""

		link := resolved.String()
		if link == self.String() || seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
	}
	return links, nil
}

// withPrefix returns the links that lie strictly under prefix.
func withPrefix(links []string, prefix string) []string {
	var matched []string
	for _, link := range links {
		if link != prefix && strings.HasPrefix(link, prefix) {
			matched = append(matched, link)
		}
	}
	return matched
}

// uniqueURLs flattens lists in order, keeping the first occurrence of each URL.
func uniqueURLs(lists [][]string) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, list := range lists {
		for _, u := range list {
			if seen[u] {
				continue
			}
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls
}
