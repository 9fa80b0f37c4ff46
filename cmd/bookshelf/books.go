package main

import (
	"fmt"

	"github.com/fwojciec/bookshelf"
)

// Run executes the books command.
func (c *BooksCmd) Run(deps *Dependencies) error {
	if deps.Books == nil {
		err := bookshelf.Errorf(bookshelf.EINVALID, "no ledger configured; pass --ledger or set BOOKSHELF_LEDGER")
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookshelf.ErrorMessage(err))
		return err
	}

	filter := bookshelf.BookFilter{Limit: c.Limit}
	if c.Session != "" {
		filter.SessionID = &c.Session
	}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}

	books, err := deps.Books.FindBooks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookshelf.ErrorMessage(err))
		return err
	}

	if len(books) == 0 {
		fmt.Fprintln(deps.Stdout, "No books recorded. Run 'bookshelf crawl --ledger <path>' to record some.")
		return nil
	}

	for _, b := range books {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n",
			b.WrittenAt.Format("2006-01-02 15:04:05"), b.SessionID, b.ContentHash, b.FilePath, b.SourceURL)
	}

	return nil
}
