// Package dedupe guards against duplicate end notifications. The detector
// can surface the same finished match twice (once on a game-id mismatch and
// once on the following inactive sample), and the delivery guarantee is one
// notification per observed transition.
package dedupe

import (
	"context"
	"sync"
)

// defaultMaxSize bounds the seen-set; old match ids are of no further interest.
const defaultMaxSize = 4096

// Guard records seen match ids to ensure at-most-once notification.
type Guard interface {
	// SeenAndRecord atomically checks whether id was seen and records it if
	// not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Size returns the current number of recorded ids.
	Size() int
}

// inMemoryGuard implements Guard with a map plus a FIFO ring for eviction.
type inMemoryGuard struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	head    int
	maxSize int
}

// Option applies a configuration option to the guard.
type Option func(*inMemoryGuard)

// WithMaxSize bounds the number of ids kept in memory. Values below one keep
// the default.
func WithMaxSize(n int) Option {
	return func(g *inMemoryGuard) {
		if n > 0 {
			g.maxSize = n
		}
	}
}

// NewInMemoryGuard creates a bounded in-memory guard.
func NewInMemoryGuard(opts ...Option) Guard {
	g := &inMemoryGuard{
		maxSize: defaultMaxSize,
	}

	for _, opt := range opts {
		opt(g)
	}

	g.seen = make(map[string]struct{}, g.maxSize)
	g.order = make([]string, 0, g.maxSize)

	return g
}

func (g *inMemoryGuard) SeenAndRecord(_ context.Context, id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seen[id]; ok {
		return true
	}

	if len(g.seen) >= g.maxSize {
		// Evict the oldest id; the ring slot is reused for the new one.
		oldest := g.order[g.head]
		delete(g.seen, oldest)
		g.order[g.head] = id
		g.head = (g.head + 1) % g.maxSize
	} else {
		g.order = append(g.order, id)
	}

	g.seen[id] = struct{}{}
	return false
}

func (g *inMemoryGuard) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.seen)
}
