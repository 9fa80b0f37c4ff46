package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/crawl"
	bookprom "github.com/fwojciec/bookshelf/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Books   bookshelf.BookService
	Crawler *crawl.Crawler
	Metrics *bookprom.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log every fetch"`
	Ledger  string `env:"BOOKSHELF_LEDGER" help:"SQLite ledger recording written books (disabled when empty)"`

	Crawl CrawlCmd `cmd:"" default:"withargs" help:"Download every book in the catalog (default)"`
	Books BooksCmd `cmd:"" help:"List books recorded in the ledger"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Root        string        `default:"http://www.classicbookshelf.com/library/" env:"BOOKSHELF_ROOT" help:"Catalog root URL"`
	Dir         string        `env:"BOOKSHELF_DIR" help:"Output directory (default: books next to the executable)"`
	MaxConns    int           `default:"50" env:"BOOKSHELF_MAX_CONNS" help:"Maximum simultaneous connections"`
	Timeout     time.Duration `default:"30s" env:"BOOKSHELF_TIMEOUT" help:"Per-request timeout"`
	UserAgent   string        `env:"BOOKSHELF_USER_AGENT" help:"User-Agent header sent with every request"`
	MetricsAddr string        `env:"BOOKSHELF_METRICS_ADDR" help:"Serve Prometheus metrics on this address"`
}

// BooksCmd is the "books" subcommand.
type BooksCmd struct {
	Session string `help:"Only books written in this crawl session"`
	URL     string `name:"url" help:"Only records for this book URL"`
	Limit   int    `short:"n" help:"Maximum number of records"`
}
