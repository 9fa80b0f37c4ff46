// Package bookshelf downloads a hierarchical book catalog (categories, books,
// chapters) and stores every book as a single plain-text file.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package bookshelf
