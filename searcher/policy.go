package searcher

import "math"

// Hyperparameters for MCTS

const C_SQUARED = 2.0 // Exploration constant

const WIN = 1.0   // Reward for winning outcome
const LOSS = -WIN // Reward for loss outcome, also applied as virtual loss

// ucb1 scores a child for selection: rewards/n + sqrt(c^2*ln(N)/n), where
// normalizer is c^2*ln(N) of the parent. Unvisited children score +Inf.
func ucb1(rewards, visits, normalizer float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/visits + math.Sqrt(normalizer/visits)
}

func reward(winner, player int) float64 {
	if winner == player {
		return WIN
	}
	return LOSS
}
