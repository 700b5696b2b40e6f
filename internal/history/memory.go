// internal/history/memory.go
//
// In-memory implementation of the Store interface.
// Used when no database is configured, and in tests.
//
// Characteristics:
//   - Keeps at most max entries; the oldest is dropped first.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package history

import (
	"context"
	"sync"
	"time"
)

// DefaultMemoryLimit bounds a memory store created with max <= 0.
const DefaultMemoryLimit = 500

// memory is a bounded slice-backed Store, oldest first.
type memory struct {
	mu      sync.RWMutex // guards entries and nextID
	entries []Entry
	nextID  int64
	max     int
}

// NewMemoryStore constructs an in-memory Store holding up to max entries.
func NewMemoryStore(max int) Store {
	if max <= 0 {
		max = DefaultMemoryLimit
	}
	return &memory{max: max, nextID: 1}
}

// Record appends e, evicting the oldest entry when full.
func (m *memory) Record(ctx context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.nextID
	m.nextID++
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if len(m.entries) >= m.max {
		m.entries = append(m.entries[:0], m.entries[1:]...)
	}
	m.entries = append(m.entries, cloneEntry(*e))
	return nil
}

// Find scans from the newest entry.
func (m *memory) Find(ctx context.Context, dict, board string, swaps, top int) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if e.Dict == dict && e.Board == board && e.Swaps == swaps && e.Top == top {
			out := cloneEntry(e)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// Recent returns up to limit entries, newest first.
func (m *memory) Recent(ctx context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Entry{}
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, cloneEntry(m.entries[i]))
	}
	return out, nil
}

// cloneEntry copies e so callers cannot mutate stored word lists.
func cloneEntry(e Entry) Entry {
	ws := make([]Word, len(e.Words))
	for i, w := range e.Words {
		w.Path = append([]Cell(nil), w.Path...)
		ws[i] = w
	}
	e.Words = ws
	return e
}
