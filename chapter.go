package bookshelf

import (
	"net/url"
	"strconv"
	"strings"
)

// Chapter is one fetched chapter of a book.
type Chapter struct {
	// Ordinal is the chapter number taken from the chapter URL.
	// Chapters of a book are assembled in ascending ordinal order.
	Ordinal int

	// Body holds the chapter text pieces in document order.
	Body []string
}

// Text returns the chapter body joined without separators.
func (c Chapter) Text() string {
	return strings.Join(c.Body, "")
}

// JoinChapters concatenates chapter texts in slice order without separators.
// Callers are expected to pass chapters already sorted by ordinal.
func JoinChapters(chapters []Chapter) string {
	var b strings.Builder
	for _, ch := range chapters {
		for _, piece := range ch.Body {
			b.WriteString(piece)
		}
	}
	return b.String()
}

// ParseChapterOrdinal returns the chapter number encoded in a chapter URL.
// The number is the path segment immediately preceding the trailing slash,
// e.g. http://example.com/library/Author/Title/12/ → 12.
func ParseChapterOrdinal(rawURL string) (int, error) {
	segments, err := escapedSegments(rawURL)
	if err != nil {
		return 0, Errorf(EINVALID, "invalid chapter URL %q: %v", rawURL, err)
	}
	if len(segments) < 2 {
		return 0, Errorf(EINVALID, "chapter URL %q has no ordinal segment", rawURL)
	}

	segment := segments[len(segments)-2]
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return 0, Errorf(EINVALID, "chapter URL %q: segment %q is not a chapter number", rawURL, segment)
	}
	n, err := strconv.Atoi(decoded)
	if err != nil || n < 0 {
		return 0, Errorf(EINVALID, "chapter URL %q: segment %q is not a chapter number", rawURL, segment)
	}
	return n, nil
}
