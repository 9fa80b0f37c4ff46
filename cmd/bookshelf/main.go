package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/crawl"
	"github.com/fwojciec/bookshelf/fs"
	"github.com/fwojciec/bookshelf/goquery"
	bookhttp "github.com/fwojciec/bookshelf/http"
	bookprom "github.com/fwojciec/bookshelf/prometheus"
	bookslog "github.com/fwojciec/bookshelf/slog"
	"github.com/fwojciec/bookshelf/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite ledger, opened only when a ledger path is configured.
	DB *sqlite.DB

	// Metrics endpoint, started only when a metrics address is configured.
	MetricsServer *http.Server
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases the ledger and stops the metrics endpoint.
func (m *Main) Close() error {
	var errs []error
	if m.MetricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, m.MetricsServer.Shutdown(ctx))
	}
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	var exited bool
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bookshelf"),
		kong.Description("Download every book of an online catalog as plain text."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { exited = true }), // help must not end the process
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	kongCtx, err := parser.Parse(args)
	if exited {
		return nil
	}
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.Ledger != "" {
		m.DB = sqlite.NewDB(cli.Ledger)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set BOOKSHELF_LEDGER to use a different ledger path\n")
			return fmt.Errorf("failed to open ledger at %q: %w", cli.Ledger, err)
		}
		deps.Books = sqlite.NewBookService(m.DB)
	}
	defer m.Close()

	if kongCtx.Command() == "crawl" {
		if err := m.wireCrawl(&cli.Crawl, deps); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireCrawl builds the crawler for the crawl command from its flags.
func (m *Main) wireCrawl(c *CrawlCmd, deps *Dependencies) error {
	dir := c.Dir
	if dir == "" {
		dir = defaultDir()
	}
	writer := fs.NewWriter(dir)
	if err := writer.Init(); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", writer.Dir(), err)
	}
	deps.Logger.Info("output directory", "dir", writer.Dir())

	opts := []bookhttp.Option{
		bookhttp.WithMaxConns(c.MaxConns),
		bookhttp.WithTimeout(c.Timeout),
	}
	if c.UserAgent != "" {
		opts = append(opts, bookhttp.WithUserAgent(c.UserAgent))
	}
	var fetcher bookshelf.Fetcher = bookhttp.NewFetcher(opts...)

	if c.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics, err := bookprom.NewMetrics(reg)
		if err != nil {
			return err
		}
		fetcher = bookprom.NewInstrumentedFetcher(fetcher, metrics)
		deps.Metrics = metrics

		m.MetricsServer = &http.Server{
			Addr:              c.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := m.MetricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				deps.Logger.Error("metrics server", "addr", c.MetricsAddr, "err", err)
			}
		}()
	}

	deps.Crawler = &crawl.Crawler{
		Fetcher:  bookslog.NewLoggingFetcher(fetcher, deps.Logger),
		Selector: goquery.NewSelector(),
		Writer:   bookslog.NewLoggingWriter(writer, deps.Logger),
		Ledger:   deps.Books,
	}
	return nil
}

// defaultDir returns the books directory next to the executable.
func defaultDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "books"
	}
	return filepath.Join(filepath.Dir(exe), "books")
}
