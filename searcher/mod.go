package searcher

import (
	"isolation/game"
	"math"
)

// Search window bounds
var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// result applies an action drawn from state.Actions(). Failure means the move
// generator and the transition disagree, which is a bug.
func result(state game.State, action game.Action) game.State {
	child, err := state.Result(action)
	if err != nil {
		panic(err)
	}
	return child
}

// heuristic returns the cutoff value of a state: the exact utility if the game is over,
// otherwise the evaluation score.
func heuristic(state game.State, player int, evaluate game.Evaluate) float64 {
	if state.Terminal() {
		return state.Utility(player)
	}
	return float64(evaluate(state, player))
}
