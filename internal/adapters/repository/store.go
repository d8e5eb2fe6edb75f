// Package repository defines the career ledger store interface and its
// in-memory implementation.
package repository

import (
	"context"

	"github.com/hqin/oicoach/internal/domain/career"
)

// Store provides append-only access to career entries. Entries are
// returned in insertion order and are never mutated after Append.
type Store interface {
	// Append records one contest occurrence.
	Append(ctx context.Context, entry career.Entry) error

	// Entries returns every recorded occurrence in insertion order.
	Entries(ctx context.Context) []career.Entry

	// ForCompetitor returns the outcomes recorded for one name, oldest
	// first. Returns ErrNoHistory if the name never appears.
	ForCompetitor(ctx context.Context, name string) ([]career.Outcome, error)

	// Count returns the number of recorded occurrences.
	Count(ctx context.Context) int
}
