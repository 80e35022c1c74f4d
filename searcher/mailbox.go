package searcher

import (
	"isolation/game"
	"sync/atomic"
)

type answer struct {
	action game.Action
	depth  int
}

// Mailbox holds the latest action reported by a search. Each Put replaces the previous
// answer; Load never blocks and always sees the most recent Put. The zero value is empty
// and ready to use.
type Mailbox struct {
	latest atomic.Pointer[answer]
}

func (m *Mailbox) Put(action game.Action, depth int) {
	m.latest.Store(&answer{action: action, depth: depth})
}

// Load returns the latest action and the depth of the pass that produced it
// (0 for the immediate answer reported before searching).
func (m *Mailbox) Load() (action game.Action, depth int, ok bool) {
	a := m.latest.Load()
	if a == nil {
		return 0, 0, false
	}
	return a.action, a.depth, true
}
