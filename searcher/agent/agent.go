package agent

import (
	"context"
	"fmt"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"isolation/searcher"

	"golang.org/x/exp/rand"
)

const (
	ALPHABETA = "alphabeta"
	GREEDY    = "greedy"
	RANDOM    = "random"
	MCTS      = "mcts"
)

type Agent interface {
	// Search reports legal actions for state into out until ctx is done or the agent
	// has nothing more to add. Every reported action is a member of state.Actions().
	Search(ctx context.Context, state game.State, out *searcher.Mailbox)
	// Metrics returns the performance metrics (if collected) of the current or last search
	Metrics() metrics.SearchMetric
}

// New builds the agent described by config. It panics on an unknown kind or evaluator.
func New(config metrics.AgentConfig) Agent {
	evaluate := game.Mobility
	if config.Evaluator != "" {
		e, ok := game.Evaluators[config.Evaluator]
		if !ok {
			panic(fmt.Sprintf("unknown evaluator %q", config.Evaluator))
		}
		evaluate = e
	}

	switch config.Kind {
	case ALPHABETA, "":
		options := []searcher.Option{
			searcher.WithEvaluationFn(evaluate),
			searcher.WithSeed(config.Seed),
			searcher.WithMetrics(),
		}
		if config.MaxDepth > 0 {
			options = append(options, searcher.WithMaxDepth(config.MaxDepth))
		}
		if config.Table {
			options = append(options, searcher.WithTranspositionTable())
		}
		return NewAlphaBetaAgent(searcher.NewAlphaBeta(options...))
	case GREEDY:
		return NewGreedyAgent(evaluate, config.Seed)
	case RANDOM:
		return NewRandomAgent(config.Seed)
	case MCTS:
		goroutines := config.Goroutines
		if goroutines <= 0 {
			goroutines = meta.GOROUTINES
		}
		return NewMCTSAgent(searcher.NewMCTS(goroutines, config.Seed))
	default:
		panic(fmt.Sprintf("unknown agent kind %q", config.Kind))
	}
}

type alphaBetaAgent struct {
	ab *searcher.AlphaBeta
}

// NewAlphaBetaAgent deepens ab until the host's deadline.
func NewAlphaBetaAgent(ab *searcher.AlphaBeta) Agent {
	return &alphaBetaAgent{ab: ab}
}

func (a *alphaBetaAgent) Search(ctx context.Context, state game.State, out *searcher.Mailbox) {
	a.ab.Deepen(ctx, state, out)
}

func (a *alphaBetaAgent) Metrics() metrics.SearchMetric {
	return a.ab.Metrics()
}

// NewGreedyAgent picks the action whose resulting state scores best under evaluate.
func NewGreedyAgent(evaluate game.Evaluate, seed uint64) Agent {
	return NewAlphaBetaAgent(searcher.NewAlphaBeta(
		searcher.WithEvaluationFn(evaluate),
		searcher.WithStartDepth(1),
		searcher.WithMaxDepth(1),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	))
}

type mctsAgent struct {
	m *searcher.MCTS
}

// NewMCTSAgent grows a search tree until the host's deadline.
func NewMCTSAgent(m *searcher.MCTS) Agent {
	return &mctsAgent{m: m}
}

func (a *mctsAgent) Search(ctx context.Context, state game.State, out *searcher.Mailbox) {
	a.m.Search(ctx, state, out)
}

func (a *mctsAgent) Metrics() metrics.SearchMetric {
	return a.m.Metrics()
}

type randomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) Search(ctx context.Context, state game.State, out *searcher.Mailbox) {
	actions := state.Actions()
	if len(actions) == 0 {
		return
	}
	out.Put(actions[a.rng.Intn(len(actions))], 0)
}

func (a *randomAgent) Metrics() metrics.SearchMetric {
	return metrics.SearchMetric{}
}
