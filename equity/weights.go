package equity

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/domino14/tetrisbot/board"
	"github.com/domino14/tetrisbot/features"
)

var ErrDimension = errors.New("weight vector does not match feature vector")

// Weights is a linear evaluation function: one weight per feature slot.
type Weights []float64

// Zero returns the all-zero weight vector for a board with cols columns.
func Zero(cols int) Weights {
	return make(Weights, features.Len(cols))
}

func (w Weights) Copy() Weights {
	c := make(Weights, len(w))
	copy(c, w)
	return c
}

// Check makes sure w has one weight per feature of a cols-wide board.
func (w Weights) Check(cols int) error {
	if len(w) != features.Len(cols) {
		return fmt.Errorf("have %d weights, need %d for %d columns: %w",
			len(w), features.Len(cols), cols, ErrDimension)
	}
	return nil
}

// Utility is the weighted sum of the features.
func (w Weights) Utility(f features.Vector) (float64, error) {
	if len(f) != len(w) {
		return 0, fmt.Errorf("%d weights, %d features: %w", len(w), len(f), ErrDimension)
	}
	return floats.Dot(w, f.Float64s()), nil
}

// BoardUtility extracts the features of b and weighs them.
func (w Weights) BoardUtility(b *board.Board) (float64, error) {
	return w.Utility(features.Extract(b))
}
