package game

// Board dimensions. Each row carries two padding bits past its last cell so that
// a knight step never wraps from one edge of the board into the next row.
const (
	Width  = 11
	Height = 9
	Size   = (Width+2)*Height - 2
)

// Bit-wise offsets for each cardinal direction
const (
	N = Width + 2
	S = -N
	W = 1
	E = -1
)

// Action is either a raw cell index (opening move) or one of the eight knight offsets.
type Action int

// The eight L-shaped steps that a knight can move in chess
const (
	NNE Action = N + N + E
	ENE Action = E + N + E
	ESE Action = E + S + E
	SSE Action = S + S + E
	SSW Action = S + S + W
	WSW Action = W + S + W
	WNW Action = W + N + W
	NNW Action = N + N + W
)

// Actions lists the knight offsets in generation order.
var Actions = [8]Action{NNE, ENE, ESE, SSE, SSW, WSW, WNW, NNW}

// BlankBoard has every playable cell open and every padding bit closed.
var BlankBoard = newBlankBoard()

func newBlankBoard() Bitboard {
	var b Bitboard
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			b = b.Set(row*(Width+2) + col)
		}
	}
	return b
}

// InBounds reports whether index addresses a bit of the board.
func InBounds(index int) bool {
	return index >= 0 && index < Size
}

// IsOffset reports whether a is one of the eight knight offsets.
func IsOffset(a Action) bool {
	for _, o := range Actions {
		if o == a {
			return true
		}
	}
	return false
}
