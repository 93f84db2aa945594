package features

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/tetrisbot/board"
	"github.com/domino14/tetrisbot/move"
	"github.com/domino14/tetrisbot/piece"
)

func TestExtractEmpty(t *testing.T) {
	is := is.New(t)
	f := Extract(board.New(20, 10))
	is.Equal(len(f), 21)
	for _, v := range f {
		is.Equal(v, 0)
	}
}

func TestExtract(t *testing.T) {
	b := board.MustParse(20, `
		.X........
		XX...X....
		X.X.XX...X
		XXX..X...X
	`)
	f := Extract(b)
	assert.Equal(t, Vector{
		// heights
		3, 4, 2, 0, 2, 3, 0, 0, 0, 2,
		// diffs
		1, 2, 2, 2, 1, 3, 0, 0, 2,
		// max height, holes
		4, 2,
	}, f)
	assert.Equal(t, 4, MaxHeight(b))
	assert.Equal(t, 1, ColumnHoles(b, 1))
}

func TestHolesIgnoreNeighbours(t *testing.T) {
	is := is.New(t)
	// The empty cell at column 1, row 0 is walled in left and right but has
	// nothing above it, so it is not a hole.
	b := board.MustParse(20, `
		X.X
		X.X
	`)
	is.Equal(Holes(b), 0)
	b = board.MustParse(20, `
		X
		.
		.
	`)
	is.Equal(Holes(b), 2)
}

func TestNames(t *testing.T) {
	is := is.New(t)
	names := Names(10)
	is.Equal(len(names), Len(10))
	is.Equal(names[0], "height-0")
	is.Equal(names[DiffIndex(10, 0)], "diff-0-1")
	is.Equal(names[MaxHeightIndex(10)], "max-height")
	is.Equal(names[HolesIndex(10)], "holes")
}

// Clearing a full row never adds a hole to any column.
func TestClearingNeverAddsHoles(t *testing.T) {
	is := is.New(t)
	b := board.MustParse(20, `
		X..X......
		X..XXX.X..
		XXXX.XXXX.
		XXXXXXXXX.
		X.XXXXXXX.
	`)
	clears := 0
	for _, m := range move.Legal(piece.I, b.Cols()) {
		res, err := b.Simulate(m, piece.I)
		is.NoErr(err)
		if res.Loss || res.RowsCleared == 0 {
			continue
		}
		clears++
		s, _ := piece.I.Shape(m.Orient)
		for c := 0; c < b.Cols(); c++ {
			if c >= m.Slot && c < m.Slot+s.Width {
				continue
			}
			is.True(ColumnHoles(res.Board, c) <= ColumnHoles(b, c))
		}
	}
	is.Equal(clears, 1)
}

func TestFloat64s(t *testing.T) {
	is := is.New(t)
	is.Equal(Vector{1, 0, 3}.Float64s(), []float64{1, 0, 3})
}
