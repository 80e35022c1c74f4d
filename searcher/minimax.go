package searcher

import "isolation/game"

// Minimax returns the depth-limited minimax value of state for player, visiting
// every node. It is the reference that pruned searches must agree with.
func Minimax(state game.State, depth int, player int, evaluate game.Evaluate) float64 {
	if state.Terminal() || depth <= 0 {
		return heuristic(state, player, evaluate)
	}

	maximizing := state.Player() == player
	best := posInf
	if maximizing {
		best = negInf
	}
	for _, a := range state.Actions() {
		v := Minimax(result(state, a), depth-1, player, evaluate)
		if maximizing && v > best || !maximizing && v < best {
			best = v
		}
	}
	return best
}
