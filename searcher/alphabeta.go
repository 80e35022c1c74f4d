package searcher

import (
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"time"

	"golang.org/x/exp/rand"
)

// AlphaBeta is a depth-limited minimax searcher with alpha-beta pruning.
// It is not safe for concurrent use; run one search at a time.
type AlphaBeta struct {
	evaluate   game.Evaluate
	startDepth int
	maxDepth   int
	rng        *rand.Rand
	useTable   bool
	metrics    metrics.Collector
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		evaluate:   game.Mobility,
		startDepth: meta.START_DEPTH,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	if ab.maxDepth > 0 && ab.maxDepth < ab.startDepth {
		panic("max depth must not be below start depth")
	}
	return ab
}

// Metrics returns a snapshot of the metrics of the current or last search.
func (ab *AlphaBeta) Metrics() metrics.SearchMetric {
	return ab.metrics.Complete()
}

// Search runs a full alpha-beta pass to the given depth from the perspective of the
// active player and returns the chosen action with its backed-up value.
func (ab *AlphaBeta) Search(state game.State, depth int) (game.Action, float64, bool) {
	return ab.newPass(state).run(depth)
}

// pass holds the data shared by every node of the searches from one root position.
type pass struct {
	root     game.State
	player   int
	actions  []game.Action
	evaluate game.Evaluate
	rng      *rand.Rand
	table    *table
	metrics  metrics.Collector
}

func (ab *AlphaBeta) newPass(root game.State) *pass {
	p := &pass{
		root:     root,
		player:   root.Player(),
		actions:  root.Actions(),
		evaluate: ab.evaluate,
		rng:      ab.rng,
		metrics:  ab.metrics,
	}
	if ab.useTable {
		p.table = newTable(meta.TABLE_LIMIT)
	}
	return p
}

func (p *pass) run(depth int) (game.Action, float64, bool) {
	if depth < 1 {
		panic("search depth must be positive")
	}
	if len(p.actions) == 0 {
		return 0, p.root.Utility(p.player), false
	}

	// Any immediately winning move will do; pick one at random
	if wins := p.immediateWins(); len(wins) > 0 {
		return wins[p.rng.Intn(len(wins))], game.Win, true
	}

	value, action := p.maxValue(p.root, negInf, posInf, depth)
	return action, value, true
}

func (p *pass) immediateWins() []game.Action {
	var wins []game.Action
	for _, a := range p.actions {
		child := result(p.root, a)
		if child.Terminal() && child.Utility(p.player) == game.Win {
			wins = append(wins, a)
		}
	}
	return wins
}

func (p *pass) maxValue(state game.State, alpha, beta float64, depth int) (float64, game.Action) {
	p.metrics.AddNode()
	if state.Terminal() || depth <= 0 {
		return heuristic(state, p.player, p.evaluate), 0
	}
	if v, ok := p.probe(state, depth, alpha, beta); ok {
		return v, 0
	}

	floor := alpha
	var best float64
	var bestAction game.Action
	found := false
	for _, a := range state.Actions() {
		v, _ := p.minValue(result(state, a), alpha, beta, depth-1)
		if !found || v > best {
			best, bestAction, found = v, a, true
		}
		if best > alpha {
			alpha = best
		}
		if best >= beta {
			p.store(state, depth, best, lowerBound)
			return best, bestAction
		}
	}
	p.store(state, depth, best, boundOf(best, floor, beta))
	return best, bestAction
}

func (p *pass) minValue(state game.State, alpha, beta float64, depth int) (float64, game.Action) {
	p.metrics.AddNode()
	if state.Terminal() || depth <= 0 {
		return heuristic(state, p.player, p.evaluate), 0
	}
	if v, ok := p.probe(state, depth, alpha, beta); ok {
		return v, 0
	}

	ceiling := beta
	var best float64
	var bestAction game.Action
	found := false
	for _, a := range state.Actions() {
		v, _ := p.maxValue(result(state, a), alpha, beta, depth-1)
		if !found || v < best {
			best, bestAction, found = v, a, true
		}
		if best < beta {
			beta = best
		}
		if best <= alpha {
			p.store(state, depth, best, upperBound)
			return best, bestAction
		}
	}
	p.store(state, depth, best, boundOf(best, alpha, ceiling))
	return best, bestAction
}

// probe looks the state up in the transposition table. The root is never probed so
// that a search always yields an action.
func (p *pass) probe(state game.State, depth int, alpha, beta float64) (float64, bool) {
	if p.table == nil || state == p.root {
		return 0, false
	}
	v, ok := p.table.lookup(state, depth, alpha, beta)
	if ok {
		p.metrics.AddTableHit()
	}
	return v, ok
}

func (p *pass) store(state game.State, depth int, value float64, kind bound) {
	if p.table == nil {
		return
	}
	p.table.store(state, depth, value, kind)
}
