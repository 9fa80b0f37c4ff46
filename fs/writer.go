// Package fs provides file-based storage for assembled books.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/bookshelf"
)

// Ensure Writer implements bookshelf.BookWriter at compile time.
var _ bookshelf.BookWriter = (*Writer)(nil)

// Writer writes books as plain text files into a single directory.
// Each book goes to <dir>/<author>-<title>.txt.
type Writer struct {
	dir string
}

// NewWriter creates a new Writer that writes to the given directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Init creates the output directory. It succeeds if the directory already exists.
func (w *Writer) Init() error {
	return os.MkdirAll(w.dir, 0755)
}

// WriteBook writes the book text and returns the file path.
// The file is written to a temporary name, synced, then renamed into place,
// so readers never observe a partially written book.
func (w *Writer) WriteBook(ctx context.Context, book *bookshelf.Book) (string, error) {
	if err := book.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, book.Filename())
	if err := writeFileAtomic(path, []byte(book.Text)); err != nil {
		return "", err
	}
	return path, nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
