package game

// Mobility scores a state by the difference between the number of liberties of
// player and of their opponent.
func Mobility(s State, player int) int {
	own := len(s.Liberties(s.locs[player]))
	opponent := len(s.Liberties(s.locs[1-player]))
	return own - opponent
}

// Aggressive weighs the opponent's liberties twice, favoring moves that chase the
// opponent over moves that keep options open.
func Aggressive(s State, player int) int {
	own := len(s.Liberties(s.locs[player]))
	opponent := len(s.Liberties(s.locs[1-player]))
	return own - 2*opponent
}

// Evaluators maps the names accepted on the command line to evaluation functions.
var Evaluators = map[string]Evaluate{
	"mobility":   Mobility,
	"aggressive": Aggressive,
}
