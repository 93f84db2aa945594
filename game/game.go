// Package game is a reference Tetris engine: it owns the real board, draws
// pieces at random, lists the legal moves for the next piece and knows when
// the game is lost. Players only ever see immutable board snapshots.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/tetrisbot/board"
	"github.com/domino14/tetrisbot/move"
	"github.com/domino14/tetrisbot/piece"
)

const (
	DefaultRows = 21
	DefaultCols = 10

	// rngBufSize and rngRounds configure per-game ChaCha generators.
	rngBufSize = 1024
	rngRounds  = 12
)

var (
	ErrGameOver     = errors.New("the game is already over")
	ErrBadMoveIndex = errors.New("move index out of range")
)

// Game is the authoritative state of one game. It is not safe for
// concurrent use; run one Game per goroutine.
type Game struct {
	board *board.Board
	next  piece.Piece
	legal [piece.NumPieces][]move.Move

	seed [32]byte
	rng  *frand.RNG

	turn        int
	rowsCleared int
	lost        bool
}

// NewGame starts a game on an empty rows x cols board. The seed fully
// determines the piece sequence.
func NewGame(rows, cols int, seed [32]byte) *Game {
	g := &Game{
		board: board.New(rows, cols),
		legal: move.LegalTable(cols),
		seed:  seed,
		rng:   frand.NewCustom(seed[:], rngBufSize, rngRounds),
	}
	g.next = g.randomPiece()
	return g
}

// NewRandomGame starts a game with a fresh random seed.
func NewRandomGame(rows, cols int) *Game {
	var seed [32]byte
	frand.Read(seed[:])
	return NewGame(rows, cols, seed)
}

func (g *Game) randomPiece() piece.Piece {
	return piece.Piece(g.rng.Intn(piece.NumPieces))
}

// Board is the current board. Boards are immutable, so the caller may keep
// it around.
func (g *Game) Board() *board.Board { return g.board }

func (g *Game) NextPiece() piece.Piece { return g.next }
func (g *Game) Turn() int              { return g.turn }
func (g *Game) RowsCleared() int       { return g.rowsCleared }
func (g *Game) HasLost() bool          { return g.lost }
func (g *Game) Seed() [32]byte         { return g.seed }

// LegalMoves lists the moves for the next piece. The slice is shared; do not
// modify it.
func (g *Game) LegalMoves() []move.Move {
	return g.legal[g.next]
}

// MakeMove plays legal move idx with the next piece. It returns false if the
// move topped out the board, after which the game is lost.
func (g *Game) MakeMove(idx int) (bool, error) {
	if g.lost {
		return false, ErrGameOver
	}
	legal := g.LegalMoves()
	if idx < 0 || idx >= len(legal) {
		return false, fmt.Errorf("move %d of %d: %w", idx, len(legal), ErrBadMoveIndex)
	}
	res, err := g.board.Simulate(legal[idx], g.next)
	if err != nil {
		return false, err
	}
	g.turn++
	if res.Loss {
		g.lost = true
		log.Debug().Int("turn", g.turn).Int("rows-cleared", g.rowsCleared).Msg("game-lost")
		return false, nil
	}
	g.board = res.Board
	g.rowsCleared += res.RowsCleared
	g.next = g.randomPiece()
	return true, nil
}
