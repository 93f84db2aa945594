// Package piece holds the static geometry of the seven tetrominoes.
//
// Every piece has one or more orientations. An orientation is described by
// its width and height and, for each column it occupies, the row offset of
// its lowest cell (Bottom) and one past its highest cell (Top), measured
// from the piece's lowest row.
package piece

import (
	"fmt"
	"strings"
)

type Piece uint8

const (
	O Piece = iota
	I
	L
	J
	T
	S
	Z

	NumPieces = 7
)

var pieceNames = [NumPieces]string{"O", "I", "L", "J", "T", "S", "Z"}

func (p Piece) String() string {
	if int(p) < NumPieces {
		return pieceNames[p]
	}
	return fmt.Sprintf("Piece(%d)", uint8(p))
}

// FromString parses a single piece letter (case insensitive).
func FromString(s string) (Piece, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range pieceNames {
		if n == s {
			return Piece(i), nil
		}
	}
	return 0, fmt.Errorf("unknown piece %q", s)
}

// All returns every piece in table order.
func All() []Piece {
	ps := make([]Piece, NumPieces)
	for i := range ps {
		ps[i] = Piece(i)
	}
	return ps
}

// Shape is one orientation of a piece. Bottom and Top are indexed by the
// column within the piece, and have Width entries each.
type Shape struct {
	Width  int
	Height int
	Bottom []int
	Top    []int
}

// Cells returns the (row, col) offsets of every cell in the shape, relative
// to the piece's lower-left corner.
func (s Shape) Cells() [][2]int {
	cells := make([][2]int, 0, 4)
	for c := 0; c < s.Width; c++ {
		for r := s.Bottom[c]; r < s.Top[c]; r++ {
			cells = append(cells, [2]int{r, c})
		}
	}
	return cells
}

var shapes = [NumPieces][]Shape{
	O: {
		{2, 2, []int{0, 0}, []int{2, 2}},
	},
	I: {
		{1, 4, []int{0}, []int{4}},
		{4, 1, []int{0, 0, 0, 0}, []int{1, 1, 1, 1}},
	},
	L: {
		{2, 3, []int{0, 0}, []int{3, 1}},
		{3, 2, []int{0, 1, 1}, []int{2, 2, 2}},
		{2, 3, []int{2, 0}, []int{3, 3}},
		{3, 2, []int{0, 0, 0}, []int{1, 1, 2}},
	},
	J: {
		{2, 3, []int{0, 0}, []int{1, 3}},
		{3, 2, []int{0, 0, 0}, []int{2, 1, 1}},
		{2, 3, []int{0, 2}, []int{3, 3}},
		{3, 2, []int{1, 1, 0}, []int{2, 2, 2}},
	},
	T: {
		{2, 3, []int{0, 1}, []int{3, 2}},
		{3, 2, []int{1, 0, 1}, []int{2, 2, 2}},
		{2, 3, []int{1, 0}, []int{2, 3}},
		{3, 2, []int{0, 0, 0}, []int{1, 2, 1}},
	},
	S: {
		{3, 2, []int{0, 0, 1}, []int{1, 2, 2}},
		{2, 3, []int{1, 0}, []int{3, 2}},
	},
	Z: {
		{3, 2, []int{1, 0, 0}, []int{2, 2, 1}},
		{2, 3, []int{0, 1}, []int{2, 3}},
	},
}

// Orients returns the number of distinct orientations of p.
func (p Piece) Orients() int {
	if int(p) >= NumPieces {
		return 0
	}
	return len(shapes[p])
}

// Shape returns the geometry of p in the given orientation. ok is false if
// either the piece or the orientation is out of range.
func (p Piece) Shape(orient int) (s Shape, ok bool) {
	if orient < 0 || orient >= p.Orients() {
		return Shape{}, false
	}
	return shapes[p][orient], true
}
