package mock

import (
	"context"

	"github.com/fwojciec/bookshelf"
)

var _ bookshelf.BookService = (*BookService)(nil)

// BookService is a mock implementation of bookshelf.BookService.
type BookService struct {
	CreateBookFn func(ctx context.Context, rec *bookshelf.BookRecord, text string) error
	FindBooksFn  func(ctx context.Context, filter bookshelf.BookFilter) ([]*bookshelf.BookRecord, error)
}

func (s *BookService) CreateBook(ctx context.Context, rec *bookshelf.BookRecord, text string) error {
	return s.CreateBookFn(ctx, rec, text)
}

func (s *BookService) FindBooks(ctx context.Context, filter bookshelf.BookFilter) ([]*bookshelf.BookRecord, error) {
	return s.FindBooksFn(ctx, filter)
}
