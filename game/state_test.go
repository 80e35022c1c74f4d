package game

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const blankBoardBits = "1111111111100111111111110011111111111001111111111100111111111110011111111111001111111111100111111111110011111111111"

// randomStates plays random games from the start state and returns every position visited.
func randomStates(t *testing.T, games int, seed uint64) []State {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var states []State
	for i := 0; i < games; i++ {
		state := NewState()
		states = append(states, state)
		for !state.Terminal() {
			actions := state.Actions()
			next, err := state.Result(actions[rng.Intn(len(actions))])
			require.NoError(t, err)
			state = next
			states = append(states, state)
		}
	}
	return states
}

func mustState(t *testing.T, board Bitboard, ply int, locs [2]Loc) State {
	t.Helper()
	s, err := FromParts(board, ply, locs)
	require.NoError(t, err)
	return s
}

func TestGeometry(t *testing.T) {
	t.Run("padding absorbs two bits per row", func(t *testing.T) {
		require.Equal(t, 115, Size)
		require.Equal(t, blankBoardBits, BlankBoard.String(), "Rows of eleven open cells should be separated by two closed bits")
	})

	t.Run("knight offsets follow the enumeration order", func(t *testing.T) {
		require.Equal(t, [8]Action{25, 11, -15, -27, -25, -11, 15, 27}, Actions)
	})

	t.Run("bounds", func(t *testing.T) {
		require.True(t, InBounds(0))
		require.True(t, InBounds(Size-1))
		require.False(t, InBounds(-1))
		require.False(t, InBounds(Size))
	})
}

func TestNewState(t *testing.T) {
	s := NewState()

	require.Equal(t, Width*Height, s.Board().Count(), "Every playable cell should be open")
	require.Equal(t, 0, s.PlyCount())
	require.Equal(t, [2]Loc{Unset, Unset}, s.Locs())
	require.Equal(t, 0, s.Player())
	require.Len(t, s.Actions(), Width*Height, "Opening player may choose any open cell")
	require.False(t, s.Terminal())
	require.Equal(t, 0.0, s.Utility(0))
}

func TestResult(t *testing.T) {
	t.Run("opening move to cell 57", func(t *testing.T) {
		start := NewState()

		s, err := start.Result(57)

		require.NoError(t, err)
		require.Equal(t, Loc(57), s.Locs()[0])
		require.Equal(t, Unset, s.Locs()[1])
		require.False(t, s.Board().Has(57), "Target cell should be closed")
		require.Equal(t, 1, s.PlyCount())
		require.Equal(t, 1, s.Player())
		require.Equal(t, NewState(), start, "Original state should not change")
	})

	t.Run("every legal action clears the target and advances the mover only", func(t *testing.T) {
		for _, s := range randomStates(t, 5, 1) {
			player := s.Player()
			for _, a := range s.Actions() {
				next, err := s.Result(a)
				require.NoError(t, err)

				target := next.Locs()[player]
				if loc := s.Locs()[player]; loc == Unset {
					require.Equal(t, Loc(a), target)
				} else {
					require.Equal(t, loc+Loc(a), target)
				}
				require.True(t, s.Board().Has(int(target)))
				require.False(t, next.Board().Has(int(target)))
				require.Equal(t, s.Board().Count()-1, next.Board().Count())
				require.Equal(t, s.PlyCount()+1, next.PlyCount())
				require.Equal(t, s.Locs()[1-player], next.Locs()[1-player], "Opponent should not move")
			}
		}
	})

	t.Run("blocked target cell", func(t *testing.T) {
		s, err := NewState().Result(57)
		require.NoError(t, err)

		_, err = s.Result(57)

		require.True(t, errors.Is(err, ErrInvalidMove))
	})

	t.Run("padding cell on the opening move", func(t *testing.T) {
		_, err := NewState().Result(11)

		require.ErrorIs(t, err, ErrInvalidMove, "Padding bits are never open")
	})

	t.Run("raw cell index after placement", func(t *testing.T) {
		s, err := NewState().Result(57)
		require.NoError(t, err)
		s, err = s.Result(0)
		require.NoError(t, err)

		_, err = s.Result(Action(3))

		require.ErrorIs(t, err, ErrInvalidMove, "Placed players may only use knight offsets")
	})

	t.Run("offset leaving the board", func(t *testing.T) {
		s := mustState(t, BlankBoard.Clear(0).Clear(57), 2, [2]Loc{0, 57})

		_, err := s.Result(SSE)

		require.ErrorIs(t, err, ErrInvalidMove)
	})
}

func TestLiberties(t *testing.T) {
	t.Run("bottom right corner does not wrap into the padding", func(t *testing.T) {
		s := NewState()

		require.Equal(t, []Loc{15, 27}, s.Liberties(0))
	})

	t.Run("top left corner stays below the last row", func(t *testing.T) {
		s := NewState()

		require.Equal(t, []Loc{99, 87}, s.Liberties(Size-1))
	})

	t.Run("center cell reaches all eight cells", func(t *testing.T) {
		s := NewState()

		require.Len(t, s.Liberties(57), 8)
	})

	t.Run("unset location sees every open cell", func(t *testing.T) {
		s, err := NewState().Result(57)
		require.NoError(t, err)

		require.Len(t, s.Liberties(Unset), Width*Height-1)
	})
}

func TestActions(t *testing.T) {
	t.Run("placed player gets offsets in enumeration order", func(t *testing.T) {
		s := mustState(t, BlankBoard.Clear(0).Clear(57), 2, [2]Loc{0, 57})

		require.Equal(t, []Action{WNW, NNW}, s.Actions())
	})

	t.Run("actions match liberties of the active player", func(t *testing.T) {
		for _, s := range randomStates(t, 5, 2) {
			loc := s.Locs()[s.Player()]
			libs := s.Liberties(loc)
			actions := s.Actions()
			require.Len(t, actions, len(libs))
			for i, a := range actions {
				if loc == Unset {
					require.Equal(t, libs[i], Loc(a))
				} else {
					require.Equal(t, libs[i], loc+Loc(a))
				}
			}
		}
	})
}

func TestTerminal(t *testing.T) {
	t.Run("either player without liberties ends the game", func(t *testing.T) {
		for _, s := range randomStates(t, 10, 3) {
			locs := s.Locs()
			stuck := len(s.Liberties(locs[0])) == 0 || len(s.Liberties(locs[1])) == 0
			require.Equal(t, stuck, s.Terminal())
		}
	})

	t.Run("utility is zero until the game ends, then opposite infinities", func(t *testing.T) {
		for _, s := range randomStates(t, 10, 4) {
			u0, u1 := s.Utility(0), s.Utility(1)
			if !s.Terminal() {
				require.Equal(t, 0.0, u0)
				require.Equal(t, 0.0, u1)
				continue
			}
			require.True(t, math.IsInf(u0, 0))
			require.True(t, math.IsInf(u1, 0))
			require.Equal(t, -u0, u1, "Exactly one player wins")
		}
	})

	t.Run("stuck active player loses", func(t *testing.T) {
		// Player 0 in the corner with both of its knight cells closed, player 1 free in the center
		board := BlankBoard.Clear(0).Clear(15).Clear(27).Clear(57)
		s := mustState(t, board, 2, [2]Loc{0, 57})

		require.True(t, s.Terminal())
		require.Equal(t, Loss, s.Utility(0))
		require.Equal(t, Win, s.Utility(1))
	})

	t.Run("stuck opponent loses even when it is not their turn", func(t *testing.T) {
		board := BlankBoard.Clear(0).Clear(15).Clear(27).Clear(57)
		s := mustState(t, board, 3, [2]Loc{0, 57})

		require.Equal(t, 1, s.Player())
		require.True(t, s.Terminal())
		require.Equal(t, Win, s.Utility(1))
		require.Equal(t, Loss, s.Utility(0))
	})

	t.Run("both players stuck means the active player loses", func(t *testing.T) {
		board := BlankBoard.Clear(0).Clear(15).Clear(27).Clear(Size - 1).Clear(99).Clear(87)
		s := mustState(t, board, 4, [2]Loc{0, Size - 1})

		require.Equal(t, Loss, s.Utility(0))
		require.Equal(t, Win, s.Utility(1))
	})
}

func TestFromParts(t *testing.T) {
	t.Run("rejects an open player cell", func(t *testing.T) {
		_, err := FromParts(BlankBoard, 1, [2]Loc{57, Unset})

		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("rejects open padding bits", func(t *testing.T) {
		_, err := FromParts(BlankBoard.Set(11), 0, [2]Loc{Unset, Unset})

		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("rejects a padding location", func(t *testing.T) {
		_, err := FromParts(BlankBoard, 1, [2]Loc{12, Unset})

		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("rebuilds an equal state", func(t *testing.T) {
		s, err := NewState().Result(57)
		require.NoError(t, err)

		got := mustState(t, s.Board(), s.PlyCount(), s.Locs())

		require.Equal(t, s, got)
	})
}

func TestStateAsKey(t *testing.T) {
	a, err := NewState().Result(57)
	require.NoError(t, err)
	b, err := NewState().Result(57)
	require.NoError(t, err)
	c, err := NewState().Result(58)
	require.NoError(t, err)

	seen := map[State]int{a: 1}
	seen[b]++

	require.Equal(t, 2, seen[a], "Equal positions should share a key")
	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Hash(), c.Hash())
}

func TestMobility(t *testing.T) {
	// Player 0 in the corner has two liberties, player 1 in the center has eight
	s := mustState(t, BlankBoard.Clear(0).Clear(57), 2, [2]Loc{0, 57})

	require.Equal(t, -6, Mobility(s, 0))
	require.Equal(t, 6, Mobility(s, 1))
	require.Equal(t, 2-16, Aggressive(s, 0))
}

func TestDebug(t *testing.T) {
	s, err := NewState().Result(57)
	require.NoError(t, err)

	x, y := Coords(57)
	require.Equal(t, 5, x)
	require.Equal(t, 4, y)

	out := s.String()
	require.Contains(t, out, "| 1 |")
	require.NotContains(t, out, "X", "The only closed cell holds player 1")
	require.Equal(t, blankBoardBits, NewState().BitboardString())
}
