package bookshelf

import (
	"context"
	"time"
)

// BookRecord is a ledger entry for a book written during a crawl.
type BookRecord struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	SourceURL   string    `json:"sourceUrl"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	FilePath    string    `json:"filePath"`
	ContentHash string    `json:"contentHash"`
	Chapters    int       `json:"chapters"`
	Bytes       int       `json:"bytes"`
	WrittenAt   time.Time `json:"writtenAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *BookRecord) Validate() error {
	if r.SessionID == "" {
		return Errorf(EINVALID, "record session ID required")
	}
	if r.SourceURL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	if r.FilePath == "" {
		return Errorf(EINVALID, "record file path required")
	}
	return nil
}

// BookService represents the ledger of written books.
type BookService interface {
	// CreateBook records a written book.
	// ID, ContentHash and WrittenAt are assigned by the implementation.
	// The text is only used to compute the content hash.
	CreateBook(ctx context.Context, rec *BookRecord, text string) error

	// FindBooks retrieves records matching the filter.
	FindBooks(ctx context.Context, filter BookFilter) ([]*BookRecord, error)
}

// BookFilter represents a filter for FindBooks.
type BookFilter struct {
	SessionID *string `json:"sessionId"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
