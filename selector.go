package bookshelf

// PositionFunc reports whether the element at pos (0-based, in document
// order) out of total matching elements should be kept.
type PositionFunc func(pos, total int) bool

// Selector answers structural queries against raw markup.
type Selector interface {
	// Attr returns the values of attr on every tag element, in document order.
	// Elements without the attribute are skipped.
	Attr(html string, tag string, attr string) ([]string, error)

	// Text returns the text nodes that are direct children of the tag
	// elements accepted by keep, in document order.
	Text(html string, tag string, keep PositionFunc) ([]string, error)
}
