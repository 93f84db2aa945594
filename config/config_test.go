package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigRows), 21)
	is.Equal(cfg.GetInt(ConfigCols), 10)
	is.Equal(cfg.GetFloat64(ConfigStep), -0.001)
	is.Equal(cfg.GetInt(ConfigGamesPerBatch), 30)
	is.NoErr(cfg.Validate())
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--games-per-batch", "5", "--step=0.01", "--debug"}, nil)
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigGamesPerBatch), 5)
	is.Equal(cfg.GetFloat64(ConfigStep), 0.01)
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.GetString(ConfigWeightsPath), "weights.txt")
}

func TestLoadEnvAndFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	cf := filepath.Join(dir, "tetrisbot.yaml")
	is.NoErr(os.WriteFile(cf, []byte("rows: 16\nweights-path: /tmp/w.txt\n"), 0o644))
	t.Setenv("TETRISBOT_THREADS", "3")

	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--config-file", cf}, nil))
	is.Equal(cfg.GetInt(ConfigRows), 16)
	is.Equal(cfg.GetString(ConfigWeightsPath), "/tmp/w.txt")
	is.Equal(cfg.GetInt(ConfigThreads), 3)
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--step", "0"}, nil)
	is.True(errors.Is(err, ErrBadConfig))
	err = cfg.Load([]string{"--cols", "2"}, nil)
	is.True(errors.Is(err, ErrBadConfig))
}
