// Package automatic plays many computer games at once, for tuning and for
// benchmarking weight vectors.
package automatic

import (
	"context"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/tetrisbot/ai/player"
	"github.com/domino14/tetrisbot/config"
	"github.com/domino14/tetrisbot/equity"
	"github.com/domino14/tetrisbot/game"
	"github.com/domino14/tetrisbot/stats"
)

// GameResult is the outcome of one game of a batch.
type GameResult struct {
	Game        int
	Seed        [32]byte
	RowsCleared int
	Turns       int
}

// Batch is a finished set of games, in game order.
type Batch struct {
	Results  []GameResult
	Stats    stats.Statistic
	Duration time.Duration
}

func (b *Batch) Mean() float64 {
	return b.Stats.Mean()
}

// Scores are the rows cleared by each game.
func (b *Batch) Scores() []int {
	return lo.Map(b.Results, func(r GameResult, _ int) int { return r.RowsCleared })
}

// GameRunner plays batches of games on a bounded pool of goroutines.
type GameRunner struct {
	rows     int
	cols     int
	threads  int
	maxTurns int
	seeds    [][32]byte

	logMu     sync.Mutex
	gameLog   *csv.Writer
	wroteHead bool
	batches   int

	gamesPlayed atomic.Uint64
}

// NewGameRunner sets up a runner from the config. If a seeds file is
// configured, it is loaded now.
func NewGameRunner(cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{
		rows:     cfg.GetInt(config.ConfigRows),
		cols:     cfg.GetInt(config.ConfigCols),
		threads:  cfg.GetInt(config.ConfigThreads),
		maxTurns: cfg.GetInt(config.ConfigMaxTurns),
	}
	if r.threads < 1 {
		r.threads = 1
	}
	if sf := cfg.GetString(config.ConfigSeedsFile); sf != "" {
		seeds, err := LoadSeeds(sf)
		if err != nil {
			return nil, err
		}
		if len(seeds) == 0 {
			return nil, fmt.Errorf("seeds file %s has no seeds", sf)
		}
		r.seeds = seeds
	}
	return r, nil
}

// SetSeeds makes game i of every batch use seeds[i]. With no seeds, every
// game gets a fresh random seed.
func (r *GameRunner) SetSeeds(seeds [][32]byte) {
	r.seeds = seeds
}

// SetGameLog makes the runner append one CSV line per finished game to w.
func (r *GameRunner) SetGameLog(w io.Writer) {
	r.gameLog = csv.NewWriter(w)
}

// OpenGameLog appends the game log to the file at path. Batch numbers carry
// on from the last batch already in the file, so that several sessions can
// share one log.
func (r *GameRunner) OpenGameLog(path string) (io.Closer, error) {
	next, hasHeader, err := nextBatchID(path)
	if err != nil {
		return nil, fmt.Errorf("reading game log %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	r.SetGameLog(f)
	r.batches = next
	r.wroteHead = hasHeader
	return f, nil
}

// GamesPlayed counts games over the runner's lifetime.
func (r *GameRunner) GamesPlayed() uint64 {
	return r.gamesPlayed.Load()
}

func (r *GameRunner) seedFor(i int) [32]byte {
	if len(r.seeds) > 0 {
		return r.seeds[i%len(r.seeds)]
	}
	var seed [32]byte
	frand.Read(seed[:])
	return seed
}

// PlayGames plays n games with p and waits for all of them. p is shared by
// every game, so it must be safe for concurrent use.
func (r *GameRunner) PlayGames(ctx context.Context, p game.Player, n int) (*Batch, error) {
	logger := zerolog.Ctx(ctx)
	if len(r.seeds) > 0 && n > len(r.seeds) {
		logger.Warn().Int("games", n).Int("seeds", len(r.seeds)).Msg("fewer-seeds-than-games-reusing")
	}
	tstart := time.Now()
	results := make([]GameResult, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.threads)
	for i := 0; i < n; i++ {
		i := i
		seed := r.seedFor(i)
		g.Go(func() error {
			gm := game.NewGame(r.rows, r.cols, seed)
			rows, err := game.Play(gctx, gm, p, r.maxTurns)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = GameResult{Game: i, Seed: seed, RowsCleared: rows, Turns: gm.Turn()}
			r.gamesPlayed.Add(1)
			logger.Debug().Int("game", i).Int("rows-cleared", rows).Int("turns", gm.Turn()).
				Msg("game-finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := &Batch{Results: results, Duration: time.Since(tstart)}
	b.Stats.PushInts(b.Scores()...)
	if err := r.logBatch(b); err != nil {
		logger.Err(err).Msg("writing-game-log")
	}
	return b, nil
}

// PlayBatch plays n games with a static player holding a copy of w.
func (r *GameRunner) PlayBatch(ctx context.Context, w equity.Weights, n int) (*Batch, error) {
	if err := w.Check(r.cols); err != nil {
		return nil, err
	}
	return r.PlayGames(ctx, player.NewStaticPlayer(w), n)
}

func (r *GameRunner) logBatch(b *Batch) error {
	if r.gameLog == nil {
		return nil
	}
	r.logMu.Lock()
	defer r.logMu.Unlock()
	if !r.wroteHead {
		if err := r.gameLog.Write(logHeader); err != nil {
			return err
		}
		r.wroteHead = true
	}
	for _, res := range b.Results {
		err := r.gameLog.Write([]string{
			strconv.Itoa(r.batches),
			strconv.Itoa(res.Game),
			base64.RawURLEncoding.EncodeToString(res.Seed[:]),
			strconv.Itoa(res.RowsCleared),
			strconv.Itoa(res.Turns),
		})
		if err != nil {
			return err
		}
	}
	r.batches++
	r.gameLog.Flush()
	return r.gameLog.Error()
}

var logHeader = []string{"batch", "game", "seed", "rows_cleared", "turns"}
