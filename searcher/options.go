package searcher

import (
	"isolation/experiments/metrics"
	"isolation/game"

	"golang.org/x/exp/rand"
)

type Option func(ab *AlphaBeta)

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
		}
	}
}

func WithStartDepth(depth int) Option {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.startDepth = depth
		}
	}
}

// WithMaxDepth stops iterative deepening after the given depth. Without it the
// deepening loop runs until the host's context is done.
func WithMaxDepth(depth int) Option {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.maxDepth = depth
		}
	}
}

// WithSeed seeds the random source used to pick among equally winning moves.
func WithSeed(seed uint64) Option {
	return func(ab *AlphaBeta) {
		ab.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTranspositionTable caches node values keyed by position and remaining depth.
func WithTranspositionTable() Option {
	return func(ab *AlphaBeta) {
		ab.useTable = true
	}
}

func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.metrics = metrics.NewCollector()
	}
}
