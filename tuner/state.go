package tuner

import (
	"fmt"

	"github.com/domino14/tetrisbot/equity"
	"github.com/domino14/tetrisbot/features"
)

// State is everything the tuner carries from round to round. Only the
// tuner's own goroutine touches it, and only between batches.
type State struct {
	Weights equity.Weights
	// Steps[i] is added to Weights[i] when it is perturbed.
	Steps []float64
	// Index is the weight perturbed next.
	Index     int
	BestScore float64
}

// NewState starts at weights w with the same step for every weight.
func NewState(w equity.Weights, step float64, bestScore float64) *State {
	steps := make([]float64, len(w))
	for i := range steps {
		steps[i] = step
	}
	return &State{Weights: w, Steps: steps, BestScore: bestScore}
}

// LoadState reads weights and best score from the store, falling back to a
// zero vector and a zero score.
func LoadState(s *Store, cols int, step float64) (*State, error) {
	w, err := s.LoadWeights(features.Len(cols))
	if err != nil {
		return nil, err
	}
	best, err := s.LoadScore()
	if err != nil {
		return nil, err
	}
	return NewState(w, step, best), nil
}

func (s *State) String() string {
	return fmt.Sprintf("<index %d best %.3f weights %v>", s.Index, s.BestScore, s.Weights)
}
