package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/jromang/picochess/internal/errors"
)

// MemoryStore keeps snapshots in a map guarded for concurrent access.
// maxCapacity of 0 means unlimited capacity.
type MemoryStore struct {
	mu          sync.RWMutex
	snapshots   map[string]Snapshot
	maxCapacity int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(maxCapacity int) *MemoryStore {
	return &MemoryStore{
		snapshots:   make(map[string]Snapshot),
		maxCapacity: maxCapacity,
	}
}

// Save stores snap, replacing an earlier snapshot with the same id. A full
// store only accepts replacements.
func (m *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snapshots[snap.ID]; !ok && m.isFull() {
		return fmt.Errorf("memory store full at %d sessions", m.maxCapacity)
	}
	m.snapshots[snap.ID] = snap
	return nil
}

// Load returns the snapshot stored under id.
func (m *MemoryStore) Load(_ context.Context, id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snapshots[id]
	if !ok {
		return Snapshot{}, fmt.Errorf("%s: %w", id, errors.ErrSessionNotFound)
	}
	return snap, nil
}

// Delete removes id. Unknown ids are ignored.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, id)
	return nil
}

// Len returns the number of stored snapshots.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snapshots)
}

// IsFull returns true if the store has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (m *MemoryStore) IsFull() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isFull()
}

func (m *MemoryStore) isFull() bool {
	return m.maxCapacity > 0 && len(m.snapshots) >= m.maxCapacity
}

func (m *MemoryStore) Close() error { return nil }
