package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/tetrisbot/ai/player"
	"github.com/domino14/tetrisbot/automatic"
	"github.com/domino14/tetrisbot/cmd/internal/logging"
	"github.com/domino14/tetrisbot/config"
	"github.com/domino14/tetrisbot/equity"
	"github.com/domino14/tetrisbot/features"
	"github.com/domino14/tetrisbot/game"
	"github.com/domino14/tetrisbot/tuner"
)

// loadWeights accepts a preset name or a weights file. An empty name reads
// the configured weights-path.
func loadWeights(cfg *config.Config, name string) (equity.Weights, error) {
	cols := cfg.GetInt(config.ConfigCols)
	if equity.IsPreset(name) {
		return equity.Preset(name, cols)
	}
	if name == "" {
		name = cfg.GetString(config.ConfigWeightsPath)
	}
	contents, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	w, err := tuner.ParseWeights(contents)
	if err != nil {
		return nil, err
	}
	return w, w.Check(cols)
}

func main() {
	fs := config.FlagSet("eval")
	weightsName := fs.String("weights", "", "weights file, or a preset (zero, handcrafted); defaults to weights-path")
	games := fs.Int("games", 0, "games to play; defaults to games-per-batch")
	bins := fs.Int("bins", 12, "histogram bins")
	show := fs.Bool("show", false, "play a single game and show the final board")
	analyze := fs.String("analyze", "", "summarize a game log CSV and exit")

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:], fs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.Setup(cfg.GetBool(config.ConfigDebug))

	if *analyze != "" {
		summary, err := automatic.AnalyzeLogFile(*analyze)
		if err != nil {
			log.Fatal().Err(err).Msg("analyzing-log")
		}
		fmt.Print(summary)
		return
	}

	w, err := loadWeights(cfg, *weightsName)
	if err != nil {
		log.Fatal().Err(err).Msg("loading-weights")
	}
	ctx, cancel := signal.NotifyContext(logger.WithContext(context.Background()), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *show {
		showGame(ctx, cfg, w)
		return
	}

	n := *games
	if n <= 0 {
		n = cfg.GetInt(config.ConfigGamesPerBatch)
	}
	runner, err := automatic.NewGameRunner(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("creating-runner")
	}
	batch, err := runner.PlayBatch(ctx, w, n)
	if err != nil {
		log.Fatal().Err(err).Msg("playing-games")
	}

	s := &batch.Stats
	fmt.Printf("Games: %d  Time: %v\n", s.Iterations(), batch.Duration.Round(time.Millisecond))
	fmt.Printf("Rows cleared: mean %.2f ± %.2f (95%%)  stdev %.2f  min %.0f  max %.0f\n",
		s.Mean(), s.ConfidenceHalfWidth(95), s.Stdev(), s.Min(), s.Max())
	scores := lo.Map(batch.Scores(), func(x int, _ int) float64 { return float64(x) })
	if err := histogram.Fprint(os.Stdout, histogram.Hist(*bins, scores), histogram.Linear(50)); err != nil {
		log.Err(err).Msg("printing-histogram")
	}
}

// showGame plays one game, logging each choice at debug level, and prints
// where it ended up.
func showGame(ctx context.Context, cfg *config.Config, w equity.Weights) {
	g := game.NewRandomGame(cfg.GetInt(config.ConfigRows), cfg.GetInt(config.ConfigCols))
	maxTurns := cfg.GetInt(config.ConfigMaxTurns)
	for !g.HasLost() && ctx.Err() == nil {
		if maxTurns > 0 && g.Turn() >= maxTurns {
			break
		}
		ranked, err := player.RankMoves(g.Board(), g.NextPiece(), g.LegalMoves(), w)
		if err != nil {
			log.Fatal().Err(err).Msg("ranking-moves")
		}
		best := ranked[0]
		log.Debug().Int("turn", g.Turn()).Stringer("piece", g.NextPiece()).
			Stringer("move", best.Move).Float64("score", best.Score()).Msg("chose")
		if _, err := g.MakeMove(best.Index); err != nil {
			log.Fatal().Err(err).Msg("making-move")
		}
	}
	fmt.Print(g.ToDisplayText())
	fmt.Println("Features:", features.Extract(g.Board()))
	fmt.Printf("You have completed %d rows.\n", g.RowsCleared())
}
