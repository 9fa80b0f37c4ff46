package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/bookshelf"
)

// Ensure InstrumentedFetcher implements bookshelf.Fetcher.
var _ bookshelf.Fetcher = (*InstrumentedFetcher)(nil)

// InstrumentedFetcher wraps a Fetcher and records every fetch in Metrics.
type InstrumentedFetcher struct {
	next    bookshelf.Fetcher
	metrics *Metrics
}

// NewInstrumentedFetcher creates a new InstrumentedFetcher.
func NewInstrumentedFetcher(next bookshelf.Fetcher, metrics *Metrics) *InstrumentedFetcher {
	return &InstrumentedFetcher{next: next, metrics: metrics}
}

// Fetch delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.metrics.InFlight.Inc()
	defer f.metrics.InFlight.Dec()

	begin := time.Now()
	text, err := f.next.Fetch(ctx, url)

	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	f.metrics.Fetches.WithLabelValues(result).Inc()
	f.metrics.Duration.WithLabelValues(result).Observe(time.Since(begin).Seconds())
	return text, err
}

// Close delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Close() error {
	return f.next.Close()
}
