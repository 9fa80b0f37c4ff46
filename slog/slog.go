// Package slog provides logging decorators for bookshelf services.
package slog
