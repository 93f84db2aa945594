package move

import (
	"fmt"

	"github.com/domino14/tetrisbot/piece"
)

// A Move places the next piece in orientation Orient with its leftmost
// column at Slot.
type Move struct {
	Orient int
	Slot   int
}

func (m Move) String() string {
	return fmt.Sprintf("o%d@%d", m.Orient, m.Slot)
}

// Legal enumerates every placement of p on a board with the given number of
// columns: orientation-major, then slot from left to right.
func Legal(p piece.Piece, cols int) []Move {
	var moves []Move
	for o := 0; o < p.Orients(); o++ {
		s, _ := p.Shape(o)
		for slot := 0; slot+s.Width <= cols; slot++ {
			moves = append(moves, Move{Orient: o, Slot: slot})
		}
	}
	return moves
}

// LegalTable precomputes Legal for every piece.
func LegalTable(cols int) [piece.NumPieces][]Move {
	var t [piece.NumPieces][]Move
	for _, p := range piece.All() {
		t[p] = Legal(p, cols)
	}
	return t
}
