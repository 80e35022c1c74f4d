package searcher

import "isolation/game"

type bound int8

const (
	exact bound = iota
	lowerBound
	upperBound
)

func boundOf(value, alpha, beta float64) bound {
	switch {
	case value <= alpha:
		return upperBound
	case value >= beta:
		return lowerBound
	default:
		return exact
	}
}

type tableKey struct {
	state game.State
	depth int // Remaining depth
}

type tableEntry struct {
	value float64
	kind  bound
}

// table is a transposition table for searches from one root position. Entries are
// only reused at the same remaining depth, so a cached value is always the value a
// fresh search of the same depth would back up.
type table struct {
	limit   int
	entries map[tableKey]tableEntry
}

func newTable(limit int) *table {
	return &table{
		limit:   limit,
		entries: make(map[tableKey]tableEntry),
	}
}

func (t *table) lookup(state game.State, depth int, alpha, beta float64) (float64, bool) {
	e, ok := t.entries[tableKey{state: state, depth: depth}]
	if !ok {
		return 0, false
	}
	switch e.kind {
	case exact:
		return e.value, true
	case lowerBound:
		return e.value, e.value >= beta
	case upperBound:
		return e.value, e.value <= alpha
	}
	return 0, false
}

func (t *table) store(state game.State, depth int, value float64, kind bound) {
	if len(t.entries) >= t.limit {
		t.entries = make(map[tableKey]tableEntry)
	}
	t.entries[tableKey{state: state, depth: depth}] = tableEntry{value: value, kind: kind}
}

func (t *table) len() int {
	return len(t.entries)
}
