package mock

import "github.com/fwojciec/bookshelf"

var _ bookshelf.Selector = (*Selector)(nil)

// Selector is a mock implementation of bookshelf.Selector.
type Selector struct {
	AttrFn func(html, tag, attr string) ([]string, error)
	TextFn func(html, tag string, keep bookshelf.PositionFunc) ([]string, error)
}

func (s *Selector) Attr(html string, tag string, attr string) ([]string, error) {
	return s.AttrFn(html, tag, attr)
}

func (s *Selector) Text(html string, tag string, keep bookshelf.PositionFunc) ([]string, error) {
	return s.TextFn(html, tag, keep)
}
