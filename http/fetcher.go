// Package http provides an HTTP-based implementation of bookshelf.Fetcher
// with a global cap on simultaneous requests.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/bookshelf"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/semaphore"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxConns is the default number of requests allowed in flight at once.
const DefaultMaxConns = 50

// Ensure Fetcher implements bookshelf.Fetcher at compile time.
var _ bookshelf.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page text using plain HTTP GET requests.
// At most maxConns requests are in flight at any time across all callers;
// additional callers block until a slot frees up or their context ends.
type Fetcher struct {
	client    *http.Client
	transport *http.Transport
	sem       *semaphore.Weighted
	timeout   time.Duration
	maxConns  int
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxConns sets the maximum number of simultaneous requests.
// Non-positive values are ignored.
func WithMaxConns(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxConns = n
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxConns: DefaultMaxConns,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxConnsPerHost = f.maxConns
	transport.MaxIdleConns = f.maxConns
	transport.MaxIdleConnsPerHost = f.maxConns

	f.transport = transport
	f.sem = semaphore.NewWeighted(int64(f.maxConns))
	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f
}

// MaxConns returns the configured request cap.
func (f *Fetcher) MaxConns() int {
	return f.maxConns
}

// Fetch retrieves the page at url and returns its body decoded to UTF-8
// using the charset declared by the response.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer f.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", bookshelf.Errorf(bookshelf.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases idle pooled connections.
func (f *Fetcher) Close() error {
	f.transport.CloseIdleConnections()
	return nil
}
