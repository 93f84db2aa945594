package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigRows          = "rows"
	ConfigCols          = "cols"
	ConfigWeightsPath   = "weights-path"
	ConfigScorePath     = "score-path"
	ConfigStep          = "step"
	ConfigGamesPerBatch = "games-per-batch"
	ConfigRounds        = "rounds"
	ConfigThreads       = "threads"
	ConfigSeedsFile     = "seeds-file"
	ConfigMaxTurns      = "max-turns"
	ConfigReportPath    = "report-path"
	ConfigDebug         = "debug"
	ConfigCPUProfile    = "cpu-profile"
	ConfigFile          = "config-file"
)

var ErrBadConfig = errors.New("invalid configuration")

// Config is a viper instance preloaded with our defaults. Values come, in
// increasing precedence, from defaults, an optional YAML config file,
// TETRISBOT_* environment variables and command-line flags.
type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigRows, 21)
	v.SetDefault(ConfigCols, 10)
	v.SetDefault(ConfigWeightsPath, "weights.txt")
	v.SetDefault(ConfigScorePath, "score.txt")
	v.SetDefault(ConfigStep, -0.001)
	v.SetDefault(ConfigGamesPerBatch, 30)
	// zero means 100 passes over every weight.
	v.SetDefault(ConfigRounds, 0)
	v.SetDefault(ConfigThreads, runtime.NumCPU())
	v.SetDefault(ConfigSeedsFile, "")
	v.SetDefault(ConfigMaxTurns, 0)
	v.SetDefault(ConfigReportPath, "")
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigCPUProfile, "")
}

// DefaultConfig returns a config holding only the defaults.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// FlagSet declares a flag for every config key, for binaries to extend.
func FlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Int(ConfigRows, 21, "number of rows in the well")
	fs.Int(ConfigCols, 10, "number of columns in the well")
	fs.String(ConfigWeightsPath, "weights.txt", "file holding the weight vector, one value per line")
	fs.String(ConfigScorePath, "score.txt", "file holding the best average score so far")
	fs.Float64(ConfigStep, -0.001, "amount added to a weight each tuning round")
	fs.Int(ConfigGamesPerBatch, 30, "games played to evaluate a weight vector")
	fs.Int(ConfigRounds, 0, "tuning rounds; 0 means 100 per weight")
	fs.Int(ConfigThreads, runtime.NumCPU(), "games played in parallel")
	fs.String(ConfigSeedsFile, "", "optional file of game seeds, reused by every batch")
	fs.Int(ConfigMaxTurns, 0, "stop a game after this many pieces; 0 plays until loss")
	fs.String(ConfigReportPath, "", "optional path of a YAML session report")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigFile, "", "optional YAML config file")
	return fs
}

// Load parses args with a FlagSet from FlagSet (or fs, if not nil) and
// layers the environment and config file under them.
func (c *Config) Load(args []string, fs *pflag.FlagSet) error {
	if fs == nil {
		fs = FlagSet("tetrisbot")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("tetrisbot")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	if cf := v.GetString(ConfigFile); cf != "" {
		v.SetConfigFile(cf)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cf, err)
		}
	}
	c.Viper = v
	return c.Validate()
}

// Validate checks the values that the rest of the program assumes sane.
func (c *Config) Validate() error {
	switch {
	case c.GetInt(ConfigRows) < 4:
		return fmt.Errorf("%s must be at least 4: %w", ConfigRows, ErrBadConfig)
	case c.GetInt(ConfigCols) < 4:
		return fmt.Errorf("%s must be at least 4: %w", ConfigCols, ErrBadConfig)
	case c.GetInt(ConfigGamesPerBatch) < 1:
		return fmt.Errorf("%s must be positive: %w", ConfigGamesPerBatch, ErrBadConfig)
	case c.GetInt(ConfigThreads) < 1:
		return fmt.Errorf("%s must be positive: %w", ConfigThreads, ErrBadConfig)
	case c.GetFloat64(ConfigStep) == 0:
		return fmt.Errorf("%s must not be zero: %w", ConfigStep, ErrBadConfig)
	case c.GetInt(ConfigRounds) < 0, c.GetInt(ConfigMaxTurns) < 0:
		return fmt.Errorf("%s and %s must not be negative: %w",
			ConfigRounds, ConfigMaxTurns, ErrBadConfig)
	}
	return nil
}

// SanitizedSettings is every setting, for logging at startup.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
