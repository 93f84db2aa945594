// Package player picks a placement for the next piece by simulating every
// legal move and weighing the resulting board.
package player

import (
	"errors"
	"math"
	"sort"

	"github.com/domino14/tetrisbot/board"
	"github.com/domino14/tetrisbot/equity"
	"github.com/domino14/tetrisbot/move"
	"github.com/domino14/tetrisbot/piece"
)

// LossReward is the reward of a move that ends the game.
var LossReward = math.Inf(-1)

var ErrNoLegalMoves = errors.New("no legal moves to choose from")

// Evaluation is what we know about one candidate move.
type Evaluation struct {
	Index   int
	Move    move.Move
	Loss    bool
	Reward  float64
	Utility float64
	// Board is the board after the move, nil on a loss.
	Board *board.Board
}

// Score is reward plus utility.
func (e Evaluation) Score() float64 {
	return e.Reward + e.Utility
}

// better reports whether e should be preferred over o. Any surviving move
// beats any losing one, whatever its utility.
func (e Evaluation) better(o Evaluation) bool {
	if e.Loss != o.Loss {
		return !e.Loss
	}
	return e.Score() > o.Score()
}

// Evaluate simulates a single move.
func Evaluate(b *board.Board, next piece.Piece, m move.Move, w equity.Weights) (Evaluation, error) {
	res, err := b.Simulate(m, next)
	if err != nil {
		return Evaluation{}, err
	}
	if res.Loss {
		return Evaluation{Move: m, Loss: true, Reward: LossReward}, nil
	}
	u, err := w.BoardUtility(res.Board)
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluation{
		Move:    m,
		Reward:  float64(res.RowsCleared),
		Utility: u,
		Board:   res.Board,
	}, nil
}

// SelectMove returns the index into legal of the best move. Ties go to the
// lowest index, and if every move loses the first one is returned.
func SelectMove(b *board.Board, next piece.Piece, legal []move.Move, w equity.Weights) (int, error) {
	if len(legal) == 0 {
		return 0, ErrNoLegalMoves
	}
	if err := w.Check(b.Cols()); err != nil {
		return 0, err
	}
	var best Evaluation
	for i, m := range legal {
		e, err := Evaluate(b, next, m, w)
		if err != nil {
			return 0, err
		}
		e.Index = i
		if i == 0 || e.better(best) {
			best = e
		}
	}
	return best.Index, nil
}

// RankMoves evaluates every legal move and sorts them best first. Equal
// moves keep their original order.
func RankMoves(b *board.Board, next piece.Piece, legal []move.Move, w equity.Weights) ([]Evaluation, error) {
	if err := w.Check(b.Cols()); err != nil {
		return nil, err
	}
	evals := make([]Evaluation, 0, len(legal))
	for i, m := range legal {
		e, err := Evaluate(b, next, m, w)
		if err != nil {
			return nil, err
		}
		e.Index = i
		evals = append(evals, e)
	}
	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].better(evals[j])
	})
	return evals, nil
}

// StaticPlayer plays the best move under a fixed weight vector, with no
// look-ahead.
type StaticPlayer struct {
	weights equity.Weights
}

// NewStaticPlayer keeps its own copy of w; later changes to w do not affect
// the player.
func NewStaticPlayer(w equity.Weights) *StaticPlayer {
	return &StaticPlayer{weights: w.Copy()}
}

func (p *StaticPlayer) Weights() equity.Weights {
	return p.weights.Copy()
}

func (p *StaticPlayer) PickMove(b *board.Board, next piece.Piece, legal []move.Move) (int, error) {
	return SelectMove(b, next, legal, p.weights)
}
