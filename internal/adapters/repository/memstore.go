package repository

import (
	"context"
	"sync"

	"github.com/hqin/oicoach/internal/domain/career"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithInitialCapacity pre-sizes the backing slice for long seasons.
func WithInitialCapacity(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.entries = make([]career.Entry, 0, n)
		}
	}
}

// MemoryStore implements Store with a mutex-guarded slice. Appends copy
// nothing; reads hand out copies so callers cannot mutate history.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []career.Entry
	ids     map[string]struct{}
}

// NewMemoryStore creates an empty in-memory career store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{ids: make(map[string]struct{})}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append records one contest occurrence.
func (s *MemoryStore) Append(_ context.Context, entry career.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ids[entry.ID]; exists {
		return ErrDuplicateKey
	}
	s.ids[entry.ID] = struct{}{}
	s.entries = append(s.entries, entry)
	return nil
}

// Entries returns every recorded occurrence in insertion order.
func (s *MemoryStore) Entries(_ context.Context) []career.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]career.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ForCompetitor returns the outcomes recorded for one name, oldest first.
func (s *MemoryStore) ForCompetitor(_ context.Context, name string) ([]career.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []career.Outcome
	for _, e := range s.entries {
		for _, o := range e.Outcomes {
			if o.Name == name {
				out = append(out, o)
			}
		}
	}
	if len(out) == 0 {
		return nil, ErrNoHistory
	}
	return out, nil
}

// Count returns the number of recorded occurrences.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
