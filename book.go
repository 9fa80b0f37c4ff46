package bookshelf

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Book is a fully assembled book ready to be written.
type Book struct {
	URL      string
	Author   string
	Title    string
	Text     string
	Chapters int
}

// Validate returns an error if the book contains invalid fields.
func (b *Book) Validate() error {
	if b.URL == "" {
		return Errorf(EINVALID, "book URL required")
	}
	if b.Author == "" {
		return Errorf(EINVALID, "book author required")
	}
	if b.Title == "" {
		return Errorf(EINVALID, "book title required")
	}
	return nil
}

// Filename returns the output file name for the book.
func (b *Book) Filename() string {
	return BookFilename(b.Author, b.Title)
}

// BookFilename returns the output file name for a book: "<author>-<title>.txt".
func BookFilename(author, title string) string {
	return author + "-" + title + ".txt"
}

// ParseBookURL extracts the author and title from a book index URL.
// They are the third- and second-to-last path segments, percent-decoded,
// e.g. http://example.com/library/Jane_Austen/Emma/ → ("Jane_Austen", "Emma").
// Segments that decode to a path separator or a dot name are rejected
// because they cannot form a file name.
func ParseBookURL(rawURL string) (author, title string, err error) {
	segments, err := escapedSegments(rawURL)
	if err != nil {
		return "", "", Errorf(EINVALID, "invalid book URL %q: %v", rawURL, err)
	}
	if len(segments) < 3 {
		return "", "", Errorf(EINVALID, "book URL %q has no author and title segments", rawURL)
	}

	author, err = nameSegment(segments[len(segments)-3])
	if err != nil {
		return "", "", Errorf(EINVALID, "book URL %q: author %v", rawURL, err)
	}
	title, err = nameSegment(segments[len(segments)-2])
	if err != nil {
		return "", "", Errorf(EINVALID, "book URL %q: title %v", rawURL, err)
	}
	return author, title, nil
}

// escapedSegments splits the escaped path of rawURL on "/".
// An encoded slash (%2F) stays inside its segment.
func escapedSegments(rawURL string) ([]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return strings.Split(u.EscapedPath(), "/"), nil
}

// nameSegment decodes a path segment used as part of a file name.
func nameSegment(segment string) (string, error) {
	name, err := url.PathUnescape(segment)
	if err != nil {
		return "", fmt.Errorf("segment %q: %w", segment, err)
	}
	switch {
	case name == "":
		return "", fmt.Errorf("segment is empty")
	case name == "." || name == "..":
		return "", fmt.Errorf("segment %q is a dot name", segment)
	case strings.Contains(name, "/"):
		return "", fmt.Errorf("segment %q contains a slash", segment)
	}
	return name, nil
}

// BookWriter persists assembled books.
type BookWriter interface {
	// WriteBook durably stores the book text and returns the written path.
	WriteBook(ctx context.Context, book *Book) (path string, err error)
}
