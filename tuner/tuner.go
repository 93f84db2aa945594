// Package tuner improves a weight vector by greedy coordinate ascent: each
// round nudges one weight, plays a batch of games, and keeps the nudge only
// if the batch beats the best average ever recorded.
package tuner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/domino14/tetrisbot/automatic"
	"github.com/domino14/tetrisbot/config"
	"github.com/domino14/tetrisbot/equity"
	"github.com/domino14/tetrisbot/features"
)

const roundsPerWeight = 100

// BatchRunner plays n games with a weight vector and reports on them.
type BatchRunner interface {
	PlayBatch(ctx context.Context, w equity.Weights, n int) (*automatic.Batch, error)
}

// Tuner owns a State for the length of a session.
type Tuner struct {
	state         *State
	runner        BatchRunner
	store         *Store
	names         []string
	gamesPerBatch int
	rounds        int
	round         int

	report     *Report
	reportPath string
}

// New builds a tuner around an already loaded state. store may be nil, in
// which case nothing is persisted.
func New(cfg *config.Config, st *State, runner BatchRunner, store *Store) (*Tuner, error) {
	cols := cfg.GetInt(config.ConfigCols)
	if err := st.Weights.Check(cols); err != nil {
		return nil, err
	}
	if len(st.Steps) != len(st.Weights) {
		return nil, fmt.Errorf("%d steps for %d weights", len(st.Steps), len(st.Weights))
	}
	if st.Index < 0 || st.Index >= len(st.Weights) {
		return nil, fmt.Errorf("index %d out of range for %d weights", st.Index, len(st.Weights))
	}
	rounds := cfg.GetInt(config.ConfigRounds)
	if rounds == 0 {
		rounds = len(st.Weights) * roundsPerWeight
	}
	t := &Tuner{
		state:         st,
		runner:        runner,
		store:         store,
		names:         features.Names(cols),
		gamesPerBatch: cfg.GetInt(config.ConfigGamesPerBatch),
		rounds:        rounds,
		reportPath:    cfg.GetString(config.ConfigReportPath),
	}
	t.report = newReport(t)
	return t, nil
}

func (t *Tuner) State() *State   { return t.state }
func (t *Tuner) Report() *Report { return t.report }
func (t *Tuner) Rounds() int     { return t.rounds }

// RoundResult records one perturb/evaluate/decide cycle.
type RoundResult struct {
	Round    int     `yaml:"round"`
	Index    int     `yaml:"index"`
	Feature  string  `yaml:"feature"`
	Before   float64 `yaml:"before"`
	After    float64 `yaml:"after"`
	Mean     float64 `yaml:"mean"`
	Stdev    float64 `yaml:"stdev"`
	CI95     float64 `yaml:"ci95"`
	Best     float64 `yaml:"best"`
	Accepted bool    `yaml:"accepted"`
	Seconds  float64 `yaml:"seconds"`
}

// Round perturbs the current weight, evaluates it, and keeps or reverts the
// change. If the batch fails the weight is restored and the index does not
// advance. A failure to persist an accepted change is returned after the
// round has been recorded.
func (t *Tuner) Round(ctx context.Context) (RoundResult, error) {
	logger := zerolog.Ctx(ctx)
	st := t.state
	idx := st.Index
	before := st.Weights[idx]
	st.Weights[idx] += st.Steps[idx]
	perturbed := st.Weights[idx]

	batch, err := t.runner.PlayBatch(ctx, st.Weights.Copy(), t.gamesPerBatch)
	if err != nil {
		st.Weights[idx] = before
		return RoundResult{}, err
	}

	res := RoundResult{
		Round:   t.round,
		Index:   idx,
		Feature: t.names[idx],
		Before:  before,
		Mean:    batch.Mean(),
		Stdev:   batch.Stats.Stdev(),
		CI95:    batch.Stats.ConfidenceHalfWidth(95),
		Seconds: batch.Duration.Seconds(),
	}
	var saveErr error
	if res.Mean > st.BestScore {
		st.BestScore = res.Mean
		res.Accepted = true
		res.After = perturbed
		if t.store != nil {
			saveErr = t.store.Save(st)
		}
	} else {
		st.Weights[idx] = before
		res.After = before
	}
	res.Best = st.BestScore
	st.Index = (idx + 1) % len(st.Weights)
	t.round++
	t.report.Rounds = append(t.report.Rounds, res)

	logger.Info().Int("round", res.Round).Str("feature", res.Feature).
		Float64("weight", res.After).Float64("mean", res.Mean).
		Float64("ci95", res.CI95).Float64("best", res.Best).
		Bool("accepted", res.Accepted).Msg("round-finished")
	if saveErr != nil {
		return res, fmt.Errorf("saving improved weights: %w", saveErr)
	}
	return res, nil
}

// Run plays the configured number of rounds. It always persists the state
// and writes the report before returning, including when ctx is canceled.
func (t *Tuner) Run(ctx context.Context) (*State, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Int("rounds", t.rounds).Int("games-per-batch", t.gamesPerBatch).
		Float64("best", t.state.BestScore).Msg("tuning-started")

	var runErr error
	for t.round < t.rounds {
		if _, err := t.Round(ctx); err != nil {
			runErr = err
			break
		}
	}
	if errors.Is(runErr, context.Canceled) {
		logger.Info().Int("round", t.round).Msg("tuning-interrupted")
	}
	if err := t.finish(); err != nil {
		return t.state, errors.Join(runErr, err)
	}
	logger.Info().Float64("best", t.state.BestScore).Int("rounds", t.round).Msg("tuning-finished")
	return t.state, runErr
}

func (t *Tuner) finish() error {
	t.report.finalize(t)
	if t.store != nil {
		if err := t.store.Save(t.state); err != nil {
			return err
		}
	}
	if t.reportPath != "" {
		return t.report.Write(t.reportPath)
	}
	return nil
}

// timeNow stamps the session report.
var timeNow = time.Now
