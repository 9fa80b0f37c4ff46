package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bookshelf"
	"github.com/google/uuid"
)

// timeFormat keeps a fixed fraction width so stored timestamps sort as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Ensure BookService implements bookshelf.BookService.
var _ bookshelf.BookService = (*BookService)(nil)

// BookService implements bookshelf.BookService using SQLite.
type BookService struct {
	db  *DB
	now func() time.Time
}

// BookServiceOption configures a BookService.
type BookServiceOption func(*BookService)

// WithClock sets the function used to stamp WrittenAt.
func WithClock(now func() time.Time) BookServiceOption {
	return func(s *BookService) {
		s.now = now
	}
}

// NewBookService creates a new BookService.
func NewBookService(db *DB, opts ...BookServiceOption) *BookService {
	s := &BookService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBook records a written book, assigning its ID, hash and timestamp.
func (s *BookService) CreateBook(ctx context.Context, rec *bookshelf.BookRecord, text string) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.ContentHash = hashContent(text)
	rec.WrittenAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, session_id, source_url, author, title, file_path, content_hash, chapters, bytes, written_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.SessionID,
		rec.SourceURL,
		rec.Author,
		rec.Title,
		rec.FilePath,
		rec.ContentHash,
		rec.Chapters,
		rec.Bytes,
		rec.WrittenAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("insert book %s: %w", rec.SourceURL, err)
	}
	return nil
}

// FindBooks retrieves records matching the filter, oldest first.
func (s *BookService) FindBooks(ctx context.Context, filter bookshelf.BookFilter) ([]*bookshelf.BookRecord, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT id, session_id, source_url, author, title, file_path, content_hash, chapters, bytes, written_at
		FROM books
		WHERE 1=1
	`)

	var args []any
	if filter.SessionID != nil {
		query.WriteString(" AND session_id = ?")
		args = append(args, *filter.SessionID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY written_at, source_url")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*bookshelf.BookRecord
	for rows.Next() {
		var rec bookshelf.BookRecord
		var writtenAt string
		if err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&rec.SourceURL,
			&rec.Author,
			&rec.Title,
			&rec.FilePath,
			&rec.ContentHash,
			&rec.Chapters,
			&rec.Bytes,
			&writtenAt,
		); err != nil {
			return nil, err
		}
		rec.WrittenAt, err = parseRFC3339(writtenAt, "written_at")
		if err != nil {
			return nil, err
		}
		books = append(books, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

// hashContent returns the xxhash64 of text as 16 hex characters.
func hashContent(text string) string {
	sum := binary.BigEndian.AppendUint64(nil, xxhash.Sum64String(text))
	return hex.EncodeToString(sum)
}
