package board

import (
	"errors"
	"fmt"

	"github.com/domino14/tetrisbot/move"
	"github.com/domino14/tetrisbot/piece"
)

var (
	ErrIllegalMove         = errors.New("move does not fit on the board")
	ErrInconsistentHeights = errors.New("column heights disagree with the grid")
	ErrBadDimensions       = errors.New("board must have at least one row and one column")
)

// A Board is a Tetris well. Row 0 is the bottom row. A Board is never
// modified after construction; Simulate returns a fresh Board.
type Board struct {
	rows    int
	cols    int
	cells   []bool // row-major, rows*cols
	heights []int
}

// Result is the outcome of simulating one move. If Loss is set, Board is nil
// and RowsCleared is zero.
type Result struct {
	Board       *Board
	RowsCleared int
	Loss        bool
}

// New returns an empty board.
func New(rows, cols int) *Board {
	if rows < 1 || cols < 1 {
		panic(ErrBadDimensions)
	}
	return &Board{
		rows:    rows,
		cols:    cols,
		cells:   make([]bool, rows*cols),
		heights: make([]int, cols),
	}
}

// FromSnapshot builds a board from an engine snapshot: field[r][c] non-zero
// means filled, with field[0] the bottom row, and top[c] the engine's height
// for column c. The two must agree.
func FromSnapshot(field [][]int, top []int) (*Board, error) {
	if len(field) == 0 || len(top) == 0 {
		return nil, ErrBadDimensions
	}
	b := New(len(field), len(top))
	for r, row := range field {
		if len(row) != b.cols {
			return nil, fmt.Errorf("row %d has %d columns, expected %d: %w",
				r, len(row), b.cols, ErrBadDimensions)
		}
		for c, v := range row {
			b.cells[b.idx(r, c)] = v != 0
		}
	}
	b.recomputeHeights()
	for c, h := range top {
		if b.heights[c] != h {
			return nil, fmt.Errorf("column %d: engine height %d, grid height %d: %w",
				c, h, b.heights[c], ErrInconsistentHeights)
		}
	}
	return b, nil
}

func (b *Board) idx(r, c int) int {
	return r*b.cols + c
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// Filled reports whether the cell at row r, column c is occupied.
func (b *Board) Filled(r, c int) bool {
	return b.cells[b.idx(r, c)]
}

// Height is one above the topmost filled cell of column c, or 0.
func (b *Board) Height(c int) int {
	return b.heights[c]
}

// Heights returns a copy of the column heights.
func (b *Board) Heights() []int {
	h := make([]int, len(b.heights))
	copy(h, b.heights)
	return h
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	n := &Board{
		rows:    b.rows,
		cols:    b.cols,
		cells:   make([]bool, len(b.cells)),
		heights: make([]int, len(b.heights)),
	}
	copy(n.cells, b.cells)
	copy(n.heights, b.heights)
	return n
}

func (b *Board) recomputeHeights() {
	for c := 0; c < b.cols; c++ {
		h := 0
		for r := b.rows - 1; r >= 0; r-- {
			if b.cells[b.idx(r, c)] {
				h = r + 1
				break
			}
		}
		b.heights[c] = h
	}
}

// LandingHeight is the row the lowest row of the piece comes to rest on when
// dropped with move m.
func (b *Board) LandingHeight(m move.Move, p piece.Piece) (int, error) {
	s, ok := p.Shape(m.Orient)
	if !ok || m.Slot < 0 || m.Slot+s.Width > b.cols {
		return 0, fmt.Errorf("%v %v on %d columns: %w", p, m, b.cols, ErrIllegalMove)
	}
	landing := b.heights[m.Slot] - s.Bottom[0]
	for c := 1; c < s.Width; c++ {
		landing = max(landing, b.heights[m.Slot+c]-s.Bottom[c])
	}
	return landing, nil
}

// Simulate drops piece p with move m and returns the resulting board and the
// number of rows it clears. A placement that would reach the top row is a
// loss. The receiver is never modified.
func (b *Board) Simulate(m move.Move, p piece.Piece) (Result, error) {
	landing, err := b.LandingHeight(m, p)
	if err != nil {
		return Result{}, err
	}
	s, _ := p.Shape(m.Orient)
	if landing+s.Height >= b.rows {
		return Result{Loss: true}, nil
	}

	n := b.Copy()
	for i := 0; i < s.Width; i++ {
		c := m.Slot + i
		for r := landing + s.Bottom[i]; r < landing+s.Top[i]; r++ {
			n.cells[n.idx(r, c)] = true
		}
		n.heights[c] = landing + s.Top[i]
	}

	cleared := 0
	// Top-down, so that shifting a cleared row never moves a row we have
	// yet to examine.
	for r := landing + s.Height - 1; r >= landing; r-- {
		if !n.rowFull(r) {
			continue
		}
		cleared++
		n.clearRow(r)
	}
	return Result{Board: n, RowsCleared: cleared}, nil
}

func (b *Board) rowFull(r int) bool {
	for c := 0; c < b.cols; c++ {
		if !b.cells[b.idx(r, c)] {
			return false
		}
	}
	return true
}

// clearRow removes row r and slides everything above it down by one.
func (b *Board) clearRow(r int) {
	for c := 0; c < b.cols; c++ {
		for i := r; i < b.heights[c]; i++ {
			above := false
			if i+1 < b.rows {
				above = b.cells[b.idx(i+1, c)]
			}
			b.cells[b.idx(i, c)] = above
		}
		b.heights[c]--
		for b.heights[c] >= 1 && !b.cells[b.idx(b.heights[c]-1, c)] {
			b.heights[c]--
		}
	}
}

// FullRows counts the rows that are completely filled.
func (b *Board) FullRows() int {
	n := 0
	for r := 0; r < b.rows; r++ {
		if b.rowFull(r) {
			n++
		}
	}
	return n
}
