package core

// Transposition table (spec.md 4.9). A fixed-size array indexed by
// hash mod N; an entry's stored Key is validated on read, so a torn write
// from (hypothetical) concurrent access just fails the check and is
// treated as a miss (spec.md 5, 9's "lockless TT" design note) -- this
// implementation is itself single-threaded, but the entry shape keeps that
// door open.

// Bound is the kind of score bound a TT entry records, per spec.md 3.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLowerbound
	BoundUpperbound
)

// TTEntry is the transposition-table entry shape from spec.md 3.
type TTEntry struct {
	Key      uint64
	Depth    int
	Score    int
	Bound    Bound
	BestMove Move
}

// TranspositionTable is a fixed-size, direct-mapped hash table of TTEntry,
// per spec.md 4.9.
type TranspositionTable struct {
	entries []TTEntry
}

// NewTranspositionTable allocates a table sized to hold approximately
// sizeBytes worth of entries, rounded down to the entry size.
func NewTranspositionTable(sizeBytes int) *TranspositionTable {
	const entrySize = 32 // approximate in-memory size of a TTEntry
	count := sizeBytes / entrySize
	if count < 1 {
		count = 1
	}
	return &TranspositionTable{entries: make([]TTEntry, count)}
}

func (tt *TranspositionTable) index(key uint64) uint64 {
	return key % uint64(len(tt.entries))
}

// Probe returns the stored entry for key and true, or the zero entry and
// false if the slot's key does not match (spec.md 4.9: "reads return an
// entry only when the stored key exactly matches the query key").
func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	e := tt.entries[tt.index(key)]
	if e.Bound == BoundNone || e.Key != key {
		return TTEntry{}, false
	}
	return e, true
}

// Store writes an entry using spec.md 4.9's replacement policy: always
// replace when the slot's stored key differs from the new one, otherwise
// replace only when the new depth is greater-or-equal or the new bound is
// more informative (Exact beats either bound type) than the stored one.
func (tt *TranspositionTable) Store(key uint64, depth, score int, bound Bound, best Move) {
	idx := tt.index(key)
	existing := tt.entries[idx]

	if existing.Bound == BoundNone || existing.Key != key {
		tt.entries[idx] = TTEntry{Key: key, Depth: depth, Score: score, Bound: bound, BestMove: best}
		return
	}

	if depth >= existing.Depth || (bound == BoundExact && existing.Bound != BoundExact) {
		if best.IsNone() {
			best = existing.BestMove
		}
		tt.entries[idx] = TTEntry{Key: key, Depth: depth, Score: score, Bound: bound, BestMove: best}
	}
}

// Clear resets every slot, used between unrelated searches that should not
// see stale entries (e.g. a fresh "ucinewgame").
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}
