// Package features turns a board into the fixed-length integer vector the
// evaluation function weighs.
//
// For a board with n columns the layout is:
//
//	[0, n)        height of each column
//	[n, 2n-1)     |height[c] - height[c+1]| for each adjacent pair
//	2n-1          maximum column height
//	2n            number of holes
package features

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/tetrisbot/board"
)

type Vector []int

// Len is the length of the feature vector for a board with cols columns.
func Len(cols int) int {
	return 2*cols + 1
}

func DiffIndex(cols, c int) int   { return cols + c }
func MaxHeightIndex(cols int) int { return 2*cols - 1 }
func HolesIndex(cols int) int     { return 2 * cols }

// Names labels each feature slot, for logs and reports.
func Names(cols int) []string {
	names := make([]string, 0, Len(cols))
	for c := 0; c < cols; c++ {
		names = append(names, fmt.Sprintf("height-%d", c))
	}
	for c := 0; c < cols-1; c++ {
		names = append(names, fmt.Sprintf("diff-%d-%d", c, c+1))
	}
	return append(names, "max-height", "holes")
}

// Extract computes the feature vector of b.
func Extract(b *board.Board) Vector {
	cols := b.Cols()
	heights := b.Heights()
	f := make(Vector, Len(cols))
	copy(f, heights)
	for c := 0; c < cols-1; c++ {
		d := heights[c] - heights[c+1]
		if d < 0 {
			d = -d
		}
		f[DiffIndex(cols, c)] = d
	}
	f[MaxHeightIndex(cols)] = MaxHeight(b)
	f[HolesIndex(cols)] = Holes(b)
	return f
}

// MaxHeight is the height of the tallest column.
func MaxHeight(b *board.Board) int {
	return lo.Max(b.Heights())
}

// ColumnHoles counts the empty cells below the height of column c.
func ColumnHoles(b *board.Board, c int) int {
	n := 0
	for r := 0; r < b.Height(c); r++ {
		if !b.Filled(r, c) {
			n++
		}
	}
	return n
}

// Holes counts every empty cell that has a filled cell somewhere above it
// in the same column. Horizontal neighbours are not considered.
func Holes(b *board.Board) int {
	return lo.SumBy(lo.Range(b.Cols()), func(c int) int {
		return ColumnHoles(b, c)
	})
}

// Float64s converts the vector for use with floating point weights.
func (v Vector) Float64s() []float64 {
	return lo.Map(v, func(x int, _ int) float64 { return float64(x) })
}
