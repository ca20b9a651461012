package hashing

// tableKey identifies one perft result: the position and the depth it was
// counted to.
type tableKey struct {
	hash  uint64
	depth int
}

// Table caches node counts by position hash and depth.
type Table struct {
	entries map[tableKey]uint64
	// maxEntries limits the table size (0 = unlimited)
	maxEntries int

	probes int
	hits   int
}

// NewTable creates an empty table.
// maxEntries of 0 means unlimited capacity.
func NewTable(maxEntries int) *Table {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Table{
		entries:    make(map[tableKey]uint64),
		maxEntries: maxEntries,
	}
}

// Lookup returns the stored count for hash at depth.
func (t *Table) Lookup(hash uint64, depth int) (uint64, bool) {
	t.probes++
	nodes, ok := t.entries[tableKey{hash, depth}]
	if ok {
		t.hits++
	}
	return nodes, ok
}

// Store records a count. Once the table is full new positions are dropped;
// existing ones are still updated.
func (t *Table) Store(hash uint64, depth int, nodes uint64) {
	k := tableKey{hash, depth}
	if _, ok := t.entries[k]; !ok && t.IsFull() {
		return
	}
	t.entries[k] = nodes
}

// Len returns the number of stored counts.
func (t *Table) Len() int {
	return len(t.entries)
}

// IsFull returns true if the table has reached its capacity limit.
// Always returns false for unlimited capacity (maxEntries = 0).
func (t *Table) IsFull() bool {
	return t.maxEntries > 0 && len(t.entries) >= t.maxEntries
}

// Stats returns how many lookups were made and how many found a count.
func (t *Table) Stats() (probes, hits int) {
	return t.probes, t.hits
}

// Reset clears the table and its statistics.
func (t *Table) Reset() {
	t.entries = make(map[tableKey]uint64)
	t.probes = 0
	t.hits = 0
}
