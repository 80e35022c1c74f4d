// meta/meta.go
package meta

import "time"

// TIME_LIMIT defines the wall-clock budget the host gives an agent for each move.
const TIME_LIMIT = 150 * time.Millisecond

// START_DEPTH defines the depth of the first iterative deepening pass.
const START_DEPTH = 2

// TABLE_LIMIT defines the number of transposition table entries kept for one root position.
const TABLE_LIMIT = 1 << 20

// GAMES defines the number of games played per match.
const GAMES = 20

// CONCURRENCY defines the number of games played at the same time.
const CONCURRENCY = 4

// REPORT_INTERVAL defines how often a tree search reports its best action to the host.
const REPORT_INTERVAL = 5 * time.Millisecond

// GOROUTINES defines the number of tree search goroutines of an MCTS agent.
const GOROUTINES = 4
