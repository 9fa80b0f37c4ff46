package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/bookshelf/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	logger := deps.Logger

	progress := func(event crawl.ProgressEvent) {
		if deps.Metrics != nil {
			deps.Metrics.ObserveProgress(event)
		}
		switch event.Type {
		case crawl.ProgressStarted:
			logger = logger.With("session", event.SessionID)
			logger.Info("crawl started", "root", c.Root, "books", event.Total)
		case crawl.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "%s -> %s\n", event.URL, displayPath(event.Path))
		case crawl.ProgressFailed:
			logger.Error("book failed", "url", event.URL, "err", event.Error)
		case crawl.ProgressFinished:
			logger.Info("crawl finished", "completed", event.Completed, "total", event.Total)
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, c.Root, progress)

	fmt.Fprintf(deps.Stdout, "Saved %d of %d books from %d categories (%s)\n",
		result.Saved, result.Books, result.Categories, crawl.FormatBytes(result.Bytes))

	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}
	return nil
}

// displayPath shortens a written path to its directory and file name.
func displayPath(path string) string {
	return filepath.ToSlash(filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
