package game

import (
	"math/bits"
	"strings"
)

// Bitboard is a 128-bit mask over the board cells. A one bit marks an open cell.
// It is a plain value: every operation returns a new Bitboard.
type Bitboard struct {
	lo, hi uint64
}

// Has reports whether cell i is open. Indices outside the mask are never open.
func (b Bitboard) Has(i int) bool {
	switch {
	case i < 0 || i >= 128:
		return false
	case i < 64:
		return b.lo&(1<<uint(i)) != 0
	default:
		return b.hi&(1<<uint(i-64)) != 0
	}
}

func (b Bitboard) Set(i int) Bitboard {
	switch {
	case i < 0 || i >= 128:
	case i < 64:
		b.lo |= 1 << uint(i)
	default:
		b.hi |= 1 << uint(i-64)
	}
	return b
}

func (b Bitboard) Clear(i int) Bitboard {
	switch {
	case i < 0 || i >= 128:
	case i < 64:
		b.lo &^= 1 << uint(i)
	default:
		b.hi &^= 1 << uint(i-64)
	}
	return b
}

// Count returns the number of open cells.
func (b Bitboard) Count() int {
	return bits.OnesCount64(b.lo) + bits.OnesCount64(b.hi)
}

// Subset reports whether every open cell of b is also open in other.
func (b Bitboard) Subset(other Bitboard) bool {
	return b.lo&^other.lo == 0 && b.hi&^other.hi == 0
}

// String renders the mask in binary, most significant bit first, without leading zeros.
func (b Bitboard) String() string {
	if b.hi == 0 && b.lo == 0 {
		return "0"
	}
	var sb strings.Builder
	started := false
	for i := 127; i >= 0; i-- {
		if b.Has(i) {
			started = true
			sb.WriteByte('1')
		} else if started {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
