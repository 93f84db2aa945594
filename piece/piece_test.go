package piece

import (
	"testing"

	"github.com/matryer/is"
)

func TestShapesConsistent(t *testing.T) {
	is := is.New(t)
	for _, p := range All() {
		for o := 0; o < p.Orients(); o++ {
			s, ok := p.Shape(o)
			is.True(ok)
			is.Equal(len(s.Bottom), s.Width)
			is.Equal(len(s.Top), s.Width)
			maxTop := 0
			for c := 0; c < s.Width; c++ {
				is.True(s.Top[c] > s.Bottom[c])
				maxTop = max(maxTop, s.Top[c])
			}
			is.Equal(maxTop, s.Height)
			// every tetromino has four cells
			is.Equal(len(s.Cells()), 4)
		}
	}
}

func TestOrients(t *testing.T) {
	is := is.New(t)
	is.Equal(O.Orients(), 1)
	is.Equal(I.Orients(), 2)
	is.Equal(T.Orients(), 4)
	is.Equal(Z.Orients(), 2)
	_, ok := O.Shape(1)
	is.True(!ok)
	_, ok = Piece(9).Shape(0)
	is.True(!ok)
}

func TestFromString(t *testing.T) {
	is := is.New(t)
	p, err := FromString("t")
	is.NoErr(err)
	is.Equal(p, T)
	is.Equal(p.String(), "T")
	_, err = FromString("Q")
	is.True(err != nil)
}
