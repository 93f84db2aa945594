package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tetrisbot/automatic"
	"github.com/domino14/tetrisbot/cmd/internal/logging"
	"github.com/domino14/tetrisbot/config"
	"github.com/domino14/tetrisbot/tuner"
)

var GitVersion string

func main() {
	fs := config.FlagSet("tune")
	gameLogPath := fs.String("game-log", "", "append one CSV line per game played to this file")
	genSeeds := fs.Int("gen-seeds", 0, "write this many fresh seeds to seeds-file and exit")

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:], fs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.Setup(cfg.GetBool(config.ConfigDebug))
	logger.Info().Str("version", GitVersion).Interface("config", cfg.SanitizedSettings()).Msg("starting")

	if *genSeeds > 0 {
		path := cfg.GetString(config.ConfigSeedsFile)
		if path == "" {
			log.Fatal().Msg("gen-seeds needs seeds-file")
		}
		if err := automatic.SaveSeeds(automatic.GenerateSeeds(*genSeeds), path); err != nil {
			log.Fatal().Err(err).Msg("saving-seeds")
		}
		logger.Info().Int("seeds", *genSeeds).Str("path", path).Msg("wrote-seeds")
		return
	}

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("got quit signal, finishing up...")
		cancel()
	}()

	store := &tuner.Store{
		WeightsPath: cfg.GetString(config.ConfigWeightsPath),
		ScorePath:   cfg.GetString(config.ConfigScorePath),
	}
	st, err := tuner.LoadState(store, cfg.GetInt(config.ConfigCols), cfg.GetFloat64(config.ConfigStep))
	if err != nil {
		log.Fatal().Err(err).Msg("loading-state")
	}

	runner, err := automatic.NewGameRunner(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("creating-runner")
	}
	if *gameLogPath != "" {
		f, err := runner.OpenGameLog(*gameLogPath)
		if err != nil {
			log.Fatal().Err(err).Msg("opening-game-log")
		}
		defer f.Close()
	}

	tn, err := tuner.New(cfg, st, runner, store)
	if err != nil {
		log.Fatal().Err(err).Msg("creating-tuner")
	}
	final, err := tn.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("tuning-failed")
		os.Exit(1)
	}
	logger.Info().Float64("best", final.BestScore).Int("accepted", tn.Report().Accepted).
		Uint64("games", runner.GamesPlayed()).Msg("done")
	fmt.Println(final)
}
