package game

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Loc is a cell index on the board, or Unset while a player has not placed their piece.
type Loc int

const Unset Loc = -1

// State is one position of knight's Isolation.
//
// State is immutable: every method has a value receiver and Result returns a new
// State. It is comparable with == and can be used directly as a map key, which lets
// one position be shared between search branches and transposition tables.
//
// The zero value is not a playable position; use NewState.
type State struct {
	board    Bitboard // one bits are open cells
	plyCount int      // number of actions applied since the empty board
	locs     [2]Loc   // current cell of each player
}

// NewState returns the empty-board starting position.
func NewState() State {
	return State{
		board: BlankBoard,
		locs:  [2]Loc{Unset, Unset},
	}
}

// FromParts rebuilds a position from its fields, e.g. one sent by a host or a
// reduced board built for testing.
func FromParts(board Bitboard, plyCount int, locs [2]Loc) (State, error) {
	if plyCount < 0 {
		return State{}, fmt.Errorf("%w: negative ply count %d", ErrInvalidState, plyCount)
	}
	if !board.Subset(BlankBoard) {
		return State{}, fmt.Errorf("%w: board has open bits outside the playable cells", ErrInvalidState)
	}
	for player, loc := range locs {
		if loc == Unset {
			continue
		}
		if !InBounds(int(loc)) || !BlankBoard.Has(int(loc)) {
			return State{}, fmt.Errorf("%w: player %d location %d is not a cell", ErrInvalidState, player, loc)
		}
		if board.Has(int(loc)) {
			return State{}, fmt.Errorf("%w: player %d location %d is still open", ErrInvalidState, player, loc)
		}
	}
	if locs[0] != Unset && locs[0] == locs[1] {
		return State{}, fmt.Errorf("%w: both players on cell %d", ErrInvalidState, locs[0])
	}
	return State{board: board, plyCount: plyCount, locs: locs}, nil
}

func (s State) Board() Bitboard { return s.board }
func (s State) PlyCount() int   { return s.plyCount }
func (s State) Locs() [2]Loc    { return s.locs }

// Player returns the id of the player holding initiative: 0 on even plies, 1 on odd plies.
func (s State) Player() int {
	return s.plyCount % 2
}

// Actions returns the legal actions of the active player.
//
// Before a player is placed any open cell is legal and the actions are raw cell
// indices. Afterwards the actions are the knight offsets, in the order of Actions,
// whose landing cell is open.
func (s State) Actions() []Action {
	loc := s.locs[s.Player()]
	if loc == Unset {
		cells := s.Liberties(Unset)
		actions := make([]Action, len(cells))
		for i, c := range cells {
			actions[i] = Action(c)
		}
		return actions
	}

	actions := make([]Action, 0, len(Actions))
	for _, a := range Actions {
		if s.open(int(loc) + int(a)) {
			actions = append(actions, a)
		}
	}
	return actions
}

// Result returns the state after the active player takes action.
// An action that does not land on an open cell returns an error wrapping ErrInvalidMove.
func (s State) Result(action Action) (State, error) {
	player := s.Player()
	loc := s.locs[player]

	target := int(action)
	if loc != Unset {
		if !IsOffset(action) {
			return State{}, fmt.Errorf("%w: %d is not a knight offset", ErrInvalidMove, action)
		}
		target += int(loc)
	}
	if !s.open(target) {
		return State{}, fmt.Errorf("%w: target cell %d is blocked", ErrInvalidMove, target)
	}

	next := s
	next.board = s.board.Clear(target)
	next.plyCount++
	next.locs[player] = Loc(target)
	return next, nil
}

// Terminal reports whether either player has no legal moves, regardless of whose turn it is.
func (s State) Terminal() bool {
	return !(s.hasLiberties(0) && s.hasLiberties(1))
}

// Utility returns the value of the state from the perspective of player:
// +Inf if player has won, -Inf if player has lost and 0 while the game is running.
// The active player loses if they have no liberties; otherwise the opponent does.
func (s State) Utility(player int) float64 {
	if !s.Terminal() {
		return 0
	}
	active := s.Player()
	activeHasLiberties := s.hasLiberties(active)
	if activeHasLiberties == (player == active) {
		return Win
	}
	return Loss
}

// Liberties returns the open cells reachable from loc by a single knight step, or
// every open cell on the board if loc is Unset.
func (s State) Liberties(loc Loc) []Loc {
	if loc == Unset {
		cells := make([]Loc, 0, s.board.Count())
		for i := 0; i < Size; i++ {
			if s.board.Has(i) {
				cells = append(cells, Loc(i))
			}
		}
		return cells
	}

	cells := make([]Loc, 0, len(Actions))
	for _, a := range Actions {
		if c := int(loc) + int(a); s.open(c) {
			cells = append(cells, Loc(c))
		}
	}
	return cells
}

// Hash returns a 64-bit digest of the position.
func (s State) Hash() uint64 {
	var buf [40]byte
	binary.LittleEndian.PutUint64(buf[0:], s.board.lo)
	binary.LittleEndian.PutUint64(buf[8:], s.board.hi)
	binary.LittleEndian.PutUint64(buf[16:], uint64(s.plyCount))
	binary.LittleEndian.PutUint64(buf[24:], uint64(int64(s.locs[0])))
	binary.LittleEndian.PutUint64(buf[32:], uint64(int64(s.locs[1])))
	return xxhash.Sum64(buf[:])
}

func (s State) hasLiberties(player int) bool {
	loc := s.locs[player]
	if loc == Unset {
		return s.board.Count() > 0
	}
	for _, a := range Actions {
		if s.open(int(loc) + int(a)) {
			return true
		}
	}
	return false
}

func (s State) open(i int) bool {
	return InBounds(i) && s.board.Has(i)
}
