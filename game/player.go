package game

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/domino14/tetrisbot/board"
	"github.com/domino14/tetrisbot/move"
	"github.com/domino14/tetrisbot/piece"
)

// A Player chooses one of the legal moves for the next piece, returning its
// index in legal.
type Player interface {
	PickMove(b *board.Board, next piece.Piece, legal []move.Move) (int, error)
}

// Play lets p play g until the game is lost, or until maxTurns moves have
// been made if maxTurns is positive. It returns the rows cleared. A done
// context stops the game early with the context's error.
func Play(ctx context.Context, g *Game, p Player, maxTurns int) (int, error) {
	logger := zerolog.Ctx(ctx)
	for !g.HasLost() {
		if maxTurns > 0 && g.Turn() >= maxTurns {
			logger.Debug().Int("turns", g.Turn()).Msg("turn-limit-reached")
			break
		}
		if err := ctx.Err(); err != nil {
			return g.RowsCleared(), err
		}
		idx, err := p.PickMove(g.Board(), g.NextPiece(), g.LegalMoves())
		if err != nil {
			return g.RowsCleared(), err
		}
		if _, err := g.MakeMove(idx); err != nil {
			return g.RowsCleared(), err
		}
	}
	logger.Debug().Int("rows-cleared", g.RowsCleared()).Int("turns", g.Turn()).Msg("game-over")
	return g.RowsCleared(), nil
}
