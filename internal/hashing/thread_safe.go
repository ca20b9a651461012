package hashing

import "sync"

// ThreadSafeTable wraps Table with mutex protection for concurrent access.
type ThreadSafeTable struct {
	table *Table
	mu    sync.Mutex
}

// NewThreadSafeTable creates a new thread-safe table.
// maxEntries of 0 means unlimited capacity.
func NewThreadSafeTable(maxEntries int) *ThreadSafeTable {
	return &ThreadSafeTable{
		table: NewTable(maxEntries),
	}
}

// Lookup returns the stored count for hash at depth.
func (t *ThreadSafeTable) Lookup(hash uint64, depth int) (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.table.Lookup(hash, depth)
}

// Store records a count.
func (t *ThreadSafeTable) Store(hash uint64, depth int, nodes uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.table.Store(hash, depth, nodes)
}

// Len returns the number of stored counts.
func (t *ThreadSafeTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.table.Len()
}

// IsFull returns true if the table has reached its capacity limit.
func (t *ThreadSafeTable) IsFull() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.table.IsFull()
}

// Stats returns how many lookups were made and how many found a count.
func (t *ThreadSafeTable) Stats() (probes, hits int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.table.Stats()
}

// LoadFromTable copies entries from an existing table. Call before concurrent use.
func (t *ThreadSafeTable) LoadFromTable(other *Table) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, nodes := range other.entries {
		t.table.Store(k.hash, k.depth, nodes)
	}
}
