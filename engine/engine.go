package engine

import (
	"context"
	"errors"
	"fmt"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"isolation/searcher"
	"isolation/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrNoAnswer      = errors.New("agent reported no action")
	ErrIllegalAnswer = errors.New("agent reported an illegal action")
)

type GameResult struct {
	Winner  int   // Player ID
	Forfeit error // Wraps ErrNoAnswer or ErrIllegalAnswer; nil when the game ended on the board
	Final   game.State
	Moves   []metrics.MoveMetric
}

// Reason describes how the game ended.
func (r GameResult) Reason() string {
	if r.Forfeit != nil {
		return r.Forfeit.Error()
	}
	return "isolated"
}

// Engine hosts one game between two agents. Agent i plays player i.
type Engine struct {
	agents    [2]agent.Agent
	timeLimit time.Duration
	start     game.State
}

type Option func(e *Engine)

// WithTimeLimit sets the wall-clock budget of every move.
func WithTimeLimit(limit time.Duration) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.timeLimit = limit
		}
	}
}

// WithStart starts the game from state instead of the empty board.
func WithStart(state game.State) Option {
	return func(e *Engine) {
		e.start = state
	}
}

func New(agents [2]agent.Agent, options ...Option) *Engine {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	e := &Engine{ // Default values
		agents:    agents,
		timeLimit: meta.TIME_LIMIT,
		start:     game.NewState(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays the game until a player is isolated or forfeits.
//
// Each move runs the active agent in its own goroutine and reads its latest answer
// when the time limit expires or the agent returns, whichever comes first. An agent
// that is still running past its deadline is waited for before its next move, so an
// agent never runs two searches at once.
func (e *Engine) Run(ctx context.Context) (GameResult, error) {
	var pending [2]chan struct{}
	defer func() {
		for _, done := range pending {
			if done != nil {
				<-done
			}
		}
	}()

	state := e.start
	var moves []metrics.MoveMetric
	log.Debug().Msgf("player %d is starting", state.Player())

	for !state.Terminal() {
		player := state.Player()
		if done := pending[player]; done != nil {
			select {
			case <-done:
			case <-ctx.Done():
				return GameResult{}, ctx.Err()
			}
			pending[player] = nil
		}

		out, done := e.search(ctx, player, state)
		pending[player] = done
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}

		m := metrics.MoveMetric{
			Step:         state.PlyCount() + 1,
			Player:       player,
			State:        state.Hash(),
			SearchMetric: e.agents[player].Metrics(),
		}
		action, depth, ok := out.Load()
		if !ok {
			return e.forfeit(state, moves, player, ErrNoAnswer), nil
		}
		next, err := state.Result(action)
		if err != nil {
			return e.forfeit(state, moves, player, fmt.Errorf("%w: %w", ErrIllegalAnswer, err)), nil
		}

		m.Action = int(action)
		m.Depth = depth
		moves = append(moves, m)
		state = next
	}

	winner := 0
	if state.Utility(1) == game.Win {
		winner = 1
	}
	log.Debug().Msgf("player %d won after %d plies", winner, state.PlyCount())
	return GameResult{Winner: winner, Final: state, Moves: moves}, nil
}

// search starts the agent of player and returns its mailbox once the move's time limit
// expires or the agent returns. The returned channel is closed when the agent returns.
func (e *Engine) search(ctx context.Context, player int, state game.State) (*searcher.Mailbox, chan struct{}) {
	turnCtx, cancel := context.WithTimeout(ctx, e.timeLimit)
	defer cancel()

	out := &searcher.Mailbox{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.agents[player].Search(turnCtx, state, out)
	}()

	select {
	case <-turnCtx.Done():
	case <-done:
	}
	return out, done
}

func (e *Engine) forfeit(state game.State, moves []metrics.MoveMetric, player int, reason error) GameResult {
	log.Warn().Msgf("player %d forfeits at ply %d: %v", player, state.PlyCount(), reason)
	return GameResult{
		Winner:  1 - player,
		Forfeit: reason,
		Final:   state,
		Moves:   moves,
	}
}
