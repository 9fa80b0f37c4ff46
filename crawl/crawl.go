// Package crawl downloads a book catalog.
// It discovers categories and books, fetches chapters concurrently,
// reassembles them in chapter order and hands finished books to a writer.
package crawl

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/bookshelf"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Crawler downloads every book reachable from a catalog root page.
//
// Every fan-out (categories, books, chapters) starts one goroutine per unit.
// The Fetcher is the only shared resource and enforces the connection cap.
// A failing unit does not cancel its siblings; the batch reports the first error.
type Crawler struct {
	Fetcher  bookshelf.Fetcher
	Selector bookshelf.Selector
	Writer   bookshelf.BookWriter

	// Ledger, if set, records every written book.
	Ledger bookshelf.BookService
}

// Result holds the outcome of a crawl.
type Result struct {
	SessionID  string
	Categories int
	Books      int
	Saved      int
	Failed     int
	Bytes      int
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	SessionID string
	Completed int
	Total     int
	URL       string
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSaved
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
// Calls are serialized; the callback does not need its own locking.
type ProgressFunc func(event ProgressEvent)

// Run crawls the catalog at rootURL and then closes the Fetcher,
// whether or not the crawl succeeded.
func (c *Crawler) Run(ctx context.Context, rootURL string, progress ProgressFunc) (result *Result, err error) {
	defer func() {
		if cerr := c.Fetcher.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close fetcher: %w", cerr)
		}
	}()
	return c.Crawl(ctx, rootURL, progress)
}

// Crawl discovers all categories under rootURL, all books in those
// categories, and downloads every book.
//
// Discovery failures abort the crawl before any book is downloaded.
// Book failures do not stop other books: every book pipeline runs to
// completion and the first book error is returned alongside the result.
func (c *Crawler) Crawl(ctx context.Context, rootURL string, progress ProgressFunc) (*Result, error) {
	result := &Result{SessionID: uuid.NewString()}

	categories, err := c.ListCategories(ctx, rootURL)
	if err != nil {
		return result, fmt.Errorf("list categories: %w", err)
	}
	result.Categories = len(categories)

	perCategory := make([][]string, len(categories))
	var g errgroup.Group
	for i, category := range categories {
		g.Go(func() error {
			books, err := c.ListBooks(ctx, category)
			if err != nil {
				return fmt.Errorf("list books in %s: %w", category, err)
			}
			perCategory[i] = books
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	books := uniqueURLs(perCategory)
	result.Books = len(books)

	var mu sync.Mutex
	emit := func(event ProgressEvent) {
		if progress == nil {
			return
		}
		event.SessionID = result.SessionID
		event.Total = result.Books
		event.Completed = result.Saved + result.Failed
		progress(event)
	}

	emit(ProgressEvent{Type: ProgressStarted})

	var dg errgroup.Group
	for _, bookURL := range books {
		dg.Go(func() error {
			book, path, err := c.downloadBook(ctx, result.SessionID, bookURL)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Failed++
				emit(ProgressEvent{Type: ProgressFailed, URL: bookURL, Error: err})
				return fmt.Errorf("book %s: %w", bookURL, err)
			}

			result.Saved++
			result.Bytes += len(book.Text)
			emit(ProgressEvent{Type: ProgressSaved, URL: bookURL, Path: path})
			return nil
		})
	}
	err = dg.Wait()

	emit(ProgressEvent{Type: ProgressFinished})

	return result, err
}

// downloadBook runs the full pipeline for one book: assemble, write, record.
func (c *Crawler) downloadBook(ctx context.Context, sessionID, bookURL string) (*bookshelf.Book, string, error) {
	author, title, err := bookshelf.ParseBookURL(bookURL)
	if err != nil {
		return nil, "", err
	}

	chapters, err := c.FetchChapters(ctx, bookURL)
	if err != nil {
		return nil, "", err
	}

	book := &bookshelf.Book{
		URL:      bookURL,
		Author:   author,
		Title:    title,
		Text:     bookshelf.JoinChapters(chapters),
		Chapters: len(chapters),
	}

	path, err := c.Writer.WriteBook(ctx, book)
	if err != nil {
		return nil, "", fmt.Errorf("write: %w", err)
	}

	if c.Ledger != nil {
		rec := &bookshelf.BookRecord{
			SessionID: sessionID,
			SourceURL: bookURL,
			Author:    author,
			Title:     title,
			FilePath:  path,
			Chapters:  book.Chapters,
			Bytes:     len(book.Text),
		}
		if err := c.Ledger.CreateBook(ctx, rec, book.Text); err != nil {
			return nil, "", fmt.Errorf("record %s: %w", path, err)
		}
	}

	return book, path, nil
}
