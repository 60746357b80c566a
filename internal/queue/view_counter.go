package queue

import (
	"context"
	"sync"
)

// ViewCounter buffers gig view increments until the maintenance loop drains
// them into the store. Lost increments are tolerated.
type ViewCounter interface {
	Incr(ctx context.Context, gigID string) error

	// Drain returns the buffered counts per gig and resets them.
	Drain(ctx context.Context) (map[string]int64, error)
}

type MemoryViewCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewMemoryViewCounter() *MemoryViewCounter {
	return &MemoryViewCounter{counts: make(map[string]int64)}
}

func (m *MemoryViewCounter) Incr(ctx context.Context, gigID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counts[gigID]++
	return nil
}

func (m *MemoryViewCounter) Drain(ctx context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.counts
	m.counts = make(map[string]int64)
	return out, nil
}
