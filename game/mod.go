package game

import (
	"errors"
	"math"
)

// Utility of a finished game
var (
	Win  = math.Inf(1)
	Loss = math.Inf(-1)
)

var (
	// ErrInvalidMove is returned by Result for an action that is not legal in the state.
	// It signals a caller bug: legal actions come from Actions.
	ErrInvalidMove = errors.New("invalid move")

	ErrInvalidState = errors.New("invalid state")
)

// Evaluate scores a non-terminal state from the perspective of player.
// Larger is better for player.
type Evaluate func(s State, player int) int
