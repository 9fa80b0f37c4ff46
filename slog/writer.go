package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bookshelf"
)

// Ensure LoggingWriter implements bookshelf.BookWriter.
var _ bookshelf.BookWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a BookWriter and logs each book written.
type LoggingWriter struct {
	next   bookshelf.BookWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next bookshelf.BookWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteBook delegates to the wrapped writer and logs the result.
func (w *LoggingWriter) WriteBook(ctx context.Context, book *bookshelf.Book) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.InfoContext(ctx, "write book",
			"url", book.URL,
			"path", path,
			"bytes", len(book.Text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteBook(ctx, book)
}
