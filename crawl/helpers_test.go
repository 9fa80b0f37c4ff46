package crawl_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/mock"
)

// site is an in-memory catalog keyed by URL.
type site struct {
	mu      sync.Mutex
	pages   map[string]string
	fetched []string
	closed  int
}

func newSite(pages map[string]string) *site {
	return &site{pages: pages}
}

// fetcher returns a mock Fetcher serving the site's pages.
func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.fetched = append(s.fetched, url)
			html, ok := s.pages[url]
			if !ok {
				return "", fmt.Errorf("HTTP 404 for %s", url)
			}
			return html, nil
		},
		CloseFn: func() error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.closed++
			return nil
		},
	}
}

func (s *site) fetchedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fetched...)
}

// linkPage renders a page with one anchor per href.
func linkPage(hrefs ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><ul>")
	for _, href := range hrefs {
		fmt.Fprintf(&b, `<li><a href="%s">link</a></li>`, href)
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}

// chapterPage renders a chapter page: one header paragraph, the body
// paragraphs, and two footer paragraphs.
func chapterPage(body ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><p>Classic Bookshelf header</p>")
	for _, p := range body {
		fmt.Fprintf(&b, "<p>%s</p>", p)
	}
	b.WriteString("<p>Previous | Next</p><p>Copyright footer</p></body></html>")
	return b.String()
}

// memWriter records written books in memory.
type memWriter struct {
	mu    sync.Mutex
	books map[string]string
}

func newMemWriter() *memWriter {
	return &memWriter{books: make(map[string]string)}
}

func (w *memWriter) writer() *mock.BookWriter {
	return &mock.BookWriter{
		WriteBookFn: func(_ context.Context, book *bookshelf.Book) (string, error) {
			w.mu.Lock()
			defer w.mu.Unlock()
			path := "books/" + book.Filename()
			w.books[path] = book.Text
			return path, nil
		},
	}
}

func (w *memWriter) written() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]string, len(w.books))
	for k, v := range w.books {
		out[k] = v
	}
	return out
}
