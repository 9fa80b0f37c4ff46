package bookshelf

import "context"

// Fetcher retrieves page text from URLs.
// Implementations must be safe for concurrent use and enforce their own
// limit on simultaneous requests; callers never coordinate admission.
type Fetcher interface {
	// Fetch performs a GET and returns the decoded response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (text string, err error)

	// Close releases pooled connections.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
