package board

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	FilledMarker = 'X'
	EmptyMarker  = '.'
)

var boardPlaintextRegex = regexp.MustCompile(`^\|(.*)\|$`)

// ToDisplayText renders the board top row first, framed by pipes, with row
// numbers on the left.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for r := b.rows - 1; r >= 0; r-- {
		fmt.Fprintf(&sb, "%2d|", r)
		for c := 0; c < b.cols; c++ {
			if b.Filled(r, c) {
				sb.WriteRune(FilledMarker)
			} else {
				sb.WriteRune(EmptyMarker)
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", b.cols) + "\n")
	return sb.String()
}

func (b *Board) String() string {
	return b.ToDisplayText()
}

// Parse builds a board with the given number of rows from plaintext. Each
// non-blank line is one row, top row first, using X (or #) for filled and
// . (or space) for empty cells; lines may be framed with pipes. The given
// lines fill the bottom of the board, so
//
//	X..
//	XX.
//
// is a board whose bottom row has two filled cells. The number of columns is
// the width of the lines, which must all agree.
func Parse(rows int, text string) (*Board, error) {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(strings.TrimLeft(l, " \t"), " \t\r")
		if l == "" {
			continue
		}
		if m := boardPlaintextRegex.FindStringSubmatch(l); m != nil {
			l = m[1]
		}
		lines = append(lines, l)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no rows in board text: %w", ErrBadDimensions)
	}
	if len(lines) > rows {
		return nil, fmt.Errorf("%d rows of text do not fit in %d rows: %w",
			len(lines), rows, ErrBadDimensions)
	}
	cols := len(lines[0])
	b := New(rows, cols)
	for i, l := range lines {
		if len(l) != cols {
			return nil, fmt.Errorf("line %d has width %d, expected %d: %w",
				i+1, len(l), cols, ErrBadDimensions)
		}
		r := len(lines) - 1 - i
		for c, ch := range l {
			switch ch {
			case 'X', 'x', '#':
				b.cells[b.idx(r, c)] = true
			case '.', ' ', '-':
			default:
				return nil, fmt.Errorf("unexpected character %q at line %d", ch, i+1)
			}
		}
	}
	b.recomputeHeights()
	return b, nil
}

// MustParse is Parse for fixed board literals; it panics on bad input.
func MustParse(rows int, text string) *Board {
	b, err := Parse(rows, text)
	if err != nil {
		panic(err)
	}
	return b
}

// Equals reports whether both boards have the same shape, cells and heights.
func (b *Board) Equals(o *Board) bool {
	if b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	for i := range b.heights {
		if b.heights[i] != o.heights[i] {
			return false
		}
	}
	return true
}
