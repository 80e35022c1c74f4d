package game

import "strings"

// Symbols used by String for each player's piece
var PlayerSymbols = [2]string{"1", "2"}

// Coords converts a board index to (x, y) coordinates. The origin is the bottom
// right corner; x grows towards the left and y grows towards the top.
func Coords(loc Loc) (x, y int) {
	return int(loc) % (Width + 2), int(loc) / (Width + 2)
}

// BitboardString renders the raw bitboard in binary.
func (s State) BitboardString() string {
	return s.board.String()
}

// String draws the board with player pieces and closed cells marked X.
func (s State) String() string {
	var sb strings.Builder
	rowsep := strings.Repeat("+ - ", Width) + "+\n"
	sb.WriteString(rowsep)
	for y := Height - 1; y >= 0; y-- {
		for x := Width - 1; x >= 0; x-- {
			loc := Loc(y*(Width+2) + x)
			sym := " "
			if !s.board.Has(int(loc)) {
				sym = "X"
			}
			for player, l := range s.locs {
				if l == loc {
					sym = PlayerSymbols[player]
				}
			}
			sb.WriteString("| " + sym + " ")
		}
		sb.WriteString("|\n")
		sb.WriteString(rowsep)
	}
	return sb.String()
}
