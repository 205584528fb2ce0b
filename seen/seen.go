// Package seen records which upstream items have already been turned into
// cards. Each store maps an identifier to the time it was last seen and drops
// entries older than its TTL in an explicit Prune that runs on every Seen and
// Mark call; there is no background cleanup.
package seen

import (
	"context"
	"sync"
	"time"
)

// Store is the dedup component injected into the feed.
type Store interface {
	// Seen reports whether id was marked within the TTL.
	Seen(ctx context.Context, id string) (bool, error)
	// Mark records id as seen now.
	Mark(ctx context.Context, id string) error
	// Prune drops expired entries and reports how many were removed.
	Prune(ctx context.Context) (int, error)
}

// Clock returns the current time; tests inject a fixed clock.
type Clock func() time.Time

// Memory is an in-process Store.
type Memory struct {
	ttl time.Duration
	now Clock

	mu    sync.Mutex
	items map[string]time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory creates an in-memory store. A nil clock uses time.Now.
func NewMemory(ttl time.Duration, now Clock) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{ttl: ttl, now: now, items: map[string]time.Time{}}
}

func (m *Memory) Seen(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune()
	_, ok := m.items[id]
	return ok, nil
}

func (m *Memory) Mark(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune()
	m.items[id] = m.now()
	return nil
}

func (m *Memory) Prune(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prune(), nil
}

// Len returns the number of live entries without pruning.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// prune must be called with mu held.
func (m *Memory) prune() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)
	removed := 0
	for id, at := range m.items {
		if at.Before(cutoff) {
			delete(m.items, id)
			removed++
		}
	}
	return removed
}
