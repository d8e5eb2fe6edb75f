// Package dedupe provides the idempotency guard behind contest resolution.
// The surrounding UI may deliver the same "contest finished" signal more
// than once; composite occurrence keys claimed here make the second
// delivery a no-op instead of a double-charge.
package dedupe

import (
	"context"
	"fmt"
	"sync"

	"github.com/hqin/oicoach/internal/domain/types"
)

// Guard records claimed occurrence keys for at-most-once processing.
type Guard interface {
	// Claim atomically checks whether key was already claimed and claims
	// it if not. Returns true if the key was newly claimed.
	Claim(ctx context.Context, key string) bool

	// Release frees a claimed key so the occurrence can be retried, used
	// when processing failed after the claim.
	Release(ctx context.Context, key string)

	Size() int
}

// FundingKey identifies one funding issuance occurrence.
func FundingKey(half int, stage types.Stage, week int) string {
	return fmt.Sprintf("funding|%d|%s|%d", half, stage, week)
}

// ResolutionKey identifies one contest resolution occurrence.
func ResolutionKey(half int, stage types.Stage, week int) string {
	return fmt.Sprintf("resolve|%d|%s|%d", half, stage, week)
}

// inMemoryGuard is a mutex-protected set. The key space is one key per
// contest occurrence, finite within a season, so no eviction is needed.
type inMemoryGuard struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryGuard creates an empty guard.
func NewInMemoryGuard() Guard {
	return &inMemoryGuard{seen: make(map[string]struct{})}
}

func (g *inMemoryGuard) Claim(_ context.Context, key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.seen[key]; exists {
		return false
	}
	g.seen[key] = struct{}{}
	return true
}

func (g *inMemoryGuard) Release(_ context.Context, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.seen, key)
}

func (g *inMemoryGuard) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.seen)
}
