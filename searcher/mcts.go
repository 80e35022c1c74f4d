package searcher

import (
	"context"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"
)

type MCTSOption func(m *MCTS)

// MCTS is a parallel Monte Carlo tree search with random playouts. Goroutines share
// one tree per search and spread out through virtual losses.
type MCTS struct {
	goroutines int
	episodes   int
	rng        *rand.Rand
	metrics    metrics.Collector
}

// WithEpisodes stops a search after the given number of playouts. Without it the
// search runs until the host's context is done.
func WithEpisodes(episodes int) MCTSOption {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func NewMCTS(goroutines int, seed uint64, options ...MCTSOption) *MCTS {
	if goroutines < 1 {
		panic("need at least one goroutine")
	}
	m := &MCTS{ // Default values
		goroutines: goroutines,
		rng:        rand.New(rand.NewSource(seed)),
		metrics:    metrics.NewCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Metrics returns a snapshot of the current or last search. Nodes counts playouts.
func (m *MCTS) Metrics() metrics.SearchMetric {
	return m.metrics.Complete()
}

// Search reports a random action immediately, then the most visited root action at
// every report interval and once more when the playouts stop.
func (m *MCTS) Search(ctx context.Context, state game.State, out *Mailbox) {
	m.metrics.Start()

	root := newNode(nil, state)
	root.actions = state.Actions() // A terminal root may still have legal actions
	if len(root.actions) == 0 {
		return
	}
	out.Put(root.actions[m.rng.Intn(len(root.actions))], 0)

	var episodes atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for ctx.Err() == nil && (m.episodes == 0 || episodes.Add(1) <= int64(m.episodes)) {
				simulate(root, state, rng)
				m.metrics.AddNode()
			}
		}(rand.New(rand.NewSource(m.rng.Uint64())))
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(meta.REPORT_INTERVAL)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			report(root, out)
			return
		case <-ticker.C:
			report(root, out)
		}
	}
}

func report(root *node, out *Mailbox) {
	if action, ok := root.bestAction(); ok {
		out.Put(action, 1)
	}
}

func simulate(root *node, state game.State, rng *rand.Rand) {
	leaf, leafState := selectThenExpand(root, state)
	winner := rollout(leafState, rng)
	backup(leaf, winner)
}

func selectThenExpand(root *node, state game.State) (*node, game.State) {
	parent := root
	child, state, selected := parent.selectOrExpand(state)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.selectOrExpand(state)
	}
	return child, state
}

// rollout plays random moves until the game is over and returns the winner.
func rollout(state game.State, rng *rand.Rand) int {
	for !state.Terminal() {
		actions := state.Actions()
		state = result(state, actions[rng.Intn(len(actions))]) // Random rollout policy
	}
	if state.Utility(0) == game.Win {
		return 0
	}
	return 1
}

func backup(leaf *node, winner int) {
	n := leaf
	for n != nil {
		parent := n.backup(winner)
		n = parent
	}
}
