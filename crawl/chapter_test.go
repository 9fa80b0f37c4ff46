package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/crawl"
	"github.com/fwojciec/bookshelf/goquery"
	"github.com/fwojciec/bookshelf/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookURL = "http://example.com/library/Jane_Austen/Emma/"

func TestCrawler_FetchChapter(t *testing.T) {
	t.Parallel()

	t.Run("drops first and last two paragraphs", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			bookURL + "3/": `<html><body>
				<p>P0 header</p><p>P1</p><p>P2</p><p>P3 footer-a</p><p>P4 footer-b</p>
			</body></html>`,
		})
		c := &crawl.Crawler{Fetcher: s.fetcher(), Selector: goquery.NewSelector()}

		ch, err := c.FetchChapter(context.Background(), bookURL+"3/")

		require.NoError(t, err)
		assert.Equal(t, 3, ch.Ordinal)
		assert.Equal(t, []string{"P1", "P2"}, ch.Body)
	})

	t.Run("returns empty body for page without content paragraphs", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			bookURL + "1/": `<p>header</p><p>footer-a</p><p>footer-b</p>`,
		})
		c := &crawl.Crawler{Fetcher: s.fetcher(), Selector: goquery.NewSelector()}

		ch, err := c.FetchChapter(context.Background(), bookURL+"1/")

		require.NoError(t, err)
		assert.Empty(t, ch.Body)
	})

	t.Run("fails on non-numeric ordinal without fetching", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{})
		c := &crawl.Crawler{Fetcher: s.fetcher(), Selector: goquery.NewSelector()}

		_, err := c.FetchChapter(context.Background(), bookURL+"preface/")

		require.Error(t, err)
		assert.Equal(t, bookshelf.EINVALID, bookshelf.ErrorCode(err))
		assert.Empty(t, s.fetchedURLs())
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("connection refused")
				},
			},
			Selector: goquery.NewSelector(),
		}

		_, err := c.FetchChapter(context.Background(), bookURL+"1/")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("propagates selector errors", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{bookURL + "1/": "<p>x</p>"})
		c := &crawl.Crawler{
			Fetcher:  s.fetcher(),
			Selector: &mock.Selector{
				TextFn: func(_, _ string, _ bookshelf.PositionFunc) ([]string, error) {
					return nil, bookshelf.Errorf(bookshelf.EINVALID, "failed to parse HTML")
				},
			},
		}

		_, err := c.FetchChapter(context.Background(), bookURL+"1/")

		require.Error(t, err)
		assert.Equal(t, bookshelf.EINVALID, bookshelf.ErrorCode(err))
	})
}

func TestCrawler_AssembleBook(t *testing.T) {
	t.Parallel()

	t.Run("orders chapters by ordinal when they complete out of order", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			bookURL:        linkPage(bookURL+"3/", bookURL+"1/", bookURL+"2/"),
			bookURL + "1/": chapterPage("One. ", "Still one. "),
			bookURL + "2/": chapterPage("Two. "),
			bookURL + "3/": chapterPage("Three."),
		}

		thirdDone := make(chan struct{})
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					switch url {
					case bookURL + "1/":
						// Chapter 1 resolves only after chapter 3.
						<-thirdDone
					case bookURL + "3/":
						defer close(thirdDone)
					}
					return pages[url], nil
				},
			},
			Selector: goquery.NewSelector(),
		}

		text, err := c.AssembleBook(context.Background(), bookURL)

		require.NoError(t, err)
		assert.Equal(t, "One. Still one. Two. Three.", text)
	})

	t.Run("selects only links under the book URL", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			bookURL: linkPage(
				bookURL+"ch/1/",
				bookURL+"ch/2/",
				"http://other.example/",
				"/library/Jane_Austen/",
				"/library/",
			),
			bookURL + "ch/1/": chapterPage("first "),
			bookURL + "ch/2/": chapterPage("second"),
		})
		c := &crawl.Crawler{Fetcher: s.fetcher(), Selector: goquery.NewSelector()}

		text, err := c.AssembleBook(context.Background(), bookURL)

		require.NoError(t, err)
		assert.Equal(t, "first second", text)
		assert.ElementsMatch(t, []string{bookURL, bookURL + "ch/1/", bookURL + "ch/2/"}, s.fetchedURLs())
	})

	t.Run("resolves relative chapter links and skips repeats", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			bookURL:        linkPage("1/", "2/", "1/#top", bookURL+"2/", "#contents"),
			bookURL + "1/": chapterPage("a"),
			bookURL + "2/": chapterPage("b"),
		})
		c := &crawl.Crawler{Fetcher: s.fetcher(), Selector: goquery.NewSelector()}

		text, err := c.AssembleBook(context.Background(), bookURL)

		require.NoError(t, err)
		assert.Equal(t, "ab", text)
		assert.Len(t, s.fetchedURLs(), 3)
	})

	t.Run("fails on duplicate chapter ordinals", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			bookURL:              linkPage(bookURL+"1/", bookURL+"part2/1/"),
			bookURL + "1/":       chapterPage("a"),
			bookURL + "part2/1/": chapterPage("b"),
		})
		c := &crawl.Crawler{Fetcher: s.fetcher(), Selector: goquery.NewSelector()}

		_, err := c.AssembleBook(context.Background(), bookURL)

		require.Error(t, err)
		assert.Equal(t, bookshelf.ECONFLICT, bookshelf.ErrorCode(err))
	})

	t.Run("fails when any chapter fails", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			bookURL:        linkPage(bookURL+"1/", bookURL+"2/", bookURL+"3/"),
			bookURL + "1/": chapterPage("a"),
			bookURL + "3/": chapterPage("c"),
		})
		c := &crawl.Crawler{Fetcher: s.fetcher(), Selector: goquery.NewSelector()}

		_, err := c.AssembleBook(context.Background(), bookURL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), bookURL+"2/")
	})

	t.Run("fails when a chapter link has no ordinal", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			bookURL:                linkPage(bookURL+"1/", bookURL+"afterword/"),
			bookURL + "1/":         chapterPage("a"),
			bookURL + "afterword/": chapterPage("z"),
		})
		c := &crawl.Crawler{Fetcher: s.fetcher(), Selector: goquery.NewSelector()}

		_, err := c.AssembleBook(context.Background(), bookURL)

		require.Error(t, err)
		assert.Equal(t, bookshelf.EINVALID, bookshelf.ErrorCode(err))
	})

	t.Run("returns empty text for book without chapters", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{bookURL: linkPage("/library/")})
		c := &crawl.Crawler{Fetcher: s.fetcher(), Selector: goquery.NewSelector()}

		text, err := c.AssembleBook(context.Background(), bookURL)

		require.NoError(t, err)
		assert.Empty(t, text)
	})
}

func TestCrawler_FetchChapters(t *testing.T) {
	t.Parallel()

	s := newSite(map[string]string{
		bookURL:         linkPage(bookURL+"10/", bookURL+"2/", bookURL+"1/"),
		bookURL + "1/":  chapterPage("a"),
		bookURL + "2/":  chapterPage("b"),
		bookURL + "10/": chapterPage("c"),
	})
	c := &crawl.Crawler{Fetcher: s.fetcher(), Selector: goquery.NewSelector()}

	chapters, err := c.FetchChapters(context.Background(), bookURL)

	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, 1, chapters[0].Ordinal)
	assert.Equal(t, 2, chapters[1].Ordinal)
	assert.Equal(t, 10, chapters[2].Ordinal)
}
