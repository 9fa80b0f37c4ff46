package crawl

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/fwojciec/bookshelf"
	"golang.org/x/sync/errgroup"
)

// bodyParagraph keeps every paragraph except the first and the last two.
// Catalog chapter pages wrap the text in one header and two footer paragraphs.
func bodyParagraph(pos, total int) bool {
	return pos >= 1 && pos < total-2
}

// FetchChapter fetches one chapter page and extracts its body text.
// The chapter ordinal comes from the URL; a URL without a numeric ordinal
// segment fails with EINVALID before anything is fetched.
func (c *Crawler) FetchChapter(ctx context.Context, chapterURL string) (bookshelf.Chapter, error) {
	ordinal, err := bookshelf.ParseChapterOrdinal(chapterURL)
	if err != nil {
		return bookshelf.Chapter{}, err
	}

	html, err := c.Fetcher.Fetch(ctx, chapterURL)
	if err != nil {
		return bookshelf.Chapter{}, err
	}

	body, err := c.Selector.Text(html, "p", bodyParagraph)
	if err != nil {
		return bookshelf.Chapter{}, err
	}

	return bookshelf.Chapter{Ordinal: ordinal, Body: body}, nil
}

// FetchChapters fetches the book index page, then every chapter it links to,
// concurrently. Chapter links are the links under the book URL.
// The chapters are returned in ascending ordinal order, independent of the
// order in which their fetches complete.
func (c *Crawler) FetchChapters(ctx context.Context, bookURL string) ([]bookshelf.Chapter, error) {
	links, err := c.pageLinks(ctx, bookURL)
	if err != nil {
		return nil, err
	}
	chapterURLs := withPrefix(links, bookURL)

	chapters := make([]bookshelf.Chapter, len(chapterURLs))
	var g errgroup.Group
	for i, chapterURL := range chapterURLs {
		g.Go(func() error {
			ch, err := c.FetchChapter(ctx, chapterURL)
			if err != nil {
				return fmt.Errorf("chapter %s: %w", chapterURL, err)
			}
			chapters[i] = ch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return orderChapters(bookURL, chapters)
}

// AssembleBook returns the full text of the book at bookURL: all chapter
// bodies concatenated in ascending ordinal order with no separators.
func (c *Crawler) AssembleBook(ctx context.Context, bookURL string) (string, error) {
	chapters, err := c.FetchChapters(ctx, bookURL)
	if err != nil {
		return "", err
	}
	return bookshelf.JoinChapters(chapters), nil
}

// orderChapters keys chapters by ordinal and returns them in ascending order.
// Two chapters with the same ordinal fail with ECONFLICT instead of one
// silently replacing the other.
func orderChapters(bookURL string, chapters []bookshelf.Chapter) ([]bookshelf.Chapter, error) {
	byOrdinal := make(map[int]bookshelf.Chapter, len(chapters))
	for _, ch := range chapters {
		if _, ok := byOrdinal[ch.Ordinal]; ok {
			return nil, bookshelf.Errorf(bookshelf.ECONFLICT, "book %s has two chapters numbered %d", bookURL, ch.Ordinal)
		}
		byOrdinal[ch.Ordinal] = ch
	}

	ordered := make([]bookshelf.Chapter, 0, len(byOrdinal))
	for _, n := range slices.Sorted(maps.Keys(byOrdinal)) {
		ordered = append(ordered, byOrdinal[n])
	}
	return ordered, nil
}
