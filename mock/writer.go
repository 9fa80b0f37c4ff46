package mock

import (
	"context"

	"github.com/fwojciec/bookshelf"
)

var _ bookshelf.BookWriter = (*BookWriter)(nil)

// BookWriter is a mock implementation of bookshelf.BookWriter.
type BookWriter struct {
	WriteBookFn func(ctx context.Context, book *bookshelf.Book) (string, error)
}

func (w *BookWriter) WriteBook(ctx context.Context, book *bookshelf.Book) (string, error) {
	return w.WriteBookFn(ctx, book)
}
