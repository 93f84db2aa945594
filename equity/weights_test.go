package equity

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/tetrisbot/board"
	"github.com/domino14/tetrisbot/features"
)

func TestUtility(t *testing.T) {
	is := is.New(t)
	w := Weights{1, -2, 0.5}
	u, err := w.Utility(features.Vector{3, 1, 4})
	is.NoErr(err)
	is.Equal(u, 3.0)

	_, err = w.Utility(features.Vector{1, 2})
	is.True(errors.Is(err, ErrDimension))
}

func TestBoardUtility(t *testing.T) {
	is := is.New(t)
	b := board.MustParse(20, `
		X.........
		X.........
	`)
	w := Zero(10)
	w[features.MaxHeightIndex(10)] = -1
	w[features.HolesIndex(10)] = -10
	u, err := w.BoardUtility(b)
	is.NoErr(err)
	is.Equal(u, -2.0)
}

func TestPresets(t *testing.T) {
	is := is.New(t)
	w, err := Preset("handcrafted", 10)
	is.NoErr(err)
	is.Equal(len(w), features.Len(10))
	is.Equal(w[features.MaxHeightIndex(10)], -8.0)

	// callers get their own copy
	w[0] = 100
	is.Equal(Handcrafted()[0], -1.0)

	_, err = Preset("handcrafted", 8)
	is.True(errors.Is(err, ErrDimension))

	z, err := Preset("ZERO", 6)
	is.NoErr(err)
	is.Equal(len(z), 13)

	_, err = Preset("nope", 10)
	is.True(err != nil)
	is.True(IsPreset("Handcrafted"))
	is.True(!IsPreset("weights.txt"))
}

func TestCheck(t *testing.T) {
	is := is.New(t)
	is.NoErr(Zero(10).Check(10))
	is.True(errors.Is(Zero(10).Check(9), ErrDimension))
}
