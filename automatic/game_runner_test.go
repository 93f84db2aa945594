package automatic

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/tetrisbot/config"
	"github.com/domino14/tetrisbot/equity"
	"github.com/domino14/tetrisbot/stats"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigThreads, 4)
	cfg.Set(config.ConfigMaxTurns, 150)
	return cfg
}

func TestPlayBatchDeterministicWithSeeds(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(testConfig())
	is.NoErr(err)
	r.SetSeeds(GenerateSeeds(8))

	b1, err := r.PlayBatch(context.Background(), equity.Handcrafted(), 8)
	is.NoErr(err)
	b2, err := r.PlayBatch(context.Background(), equity.Handcrafted(), 8)
	is.NoErr(err)

	is.Equal(len(b1.Results), 8)
	is.Equal(b1.Scores(), b2.Scores())
	for i, res := range b1.Results {
		is.Equal(res.Game, i)
		is.Equal(res.Seed, b2.Results[i].Seed)
		is.True(res.Turns <= 150)
	}
	is.Equal(r.GamesPlayed(), uint64(16))
}

func TestBatchMean(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(testConfig())
	is.NoErr(err)
	b, err := r.PlayBatch(context.Background(), equity.Zero(10), 6)
	is.NoErr(err)
	sum := 0
	for _, s := range b.Scores() {
		sum += s
	}
	is.True(stats.FuzzyEqual(b.Mean(), float64(sum)/6))
	is.Equal(b.Stats.Iterations(), 6)
}

func TestPlayBatchWrongDimension(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(testConfig())
	is.NoErr(err)
	_, err = r.PlayBatch(context.Background(), equity.Zero(9), 2)
	is.True(errors.Is(err, equity.ErrDimension))
}

func TestPlayBatchCanceled(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(testConfig())
	is.NoErr(err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.PlayBatch(ctx, equity.Handcrafted(), 4)
	is.True(errors.Is(err, context.Canceled))
}

func TestGameLog(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "games.csv")
	f, err := os.Create(logPath)
	is.NoErr(err)

	r, err := NewGameRunner(testConfig())
	is.NoErr(err)
	r.SetGameLog(f)
	_, err = r.PlayBatch(context.Background(), equity.Handcrafted(), 3)
	is.NoErr(err)
	_, err = r.PlayBatch(context.Background(), equity.Handcrafted(), 2)
	is.NoErr(err)
	is.NoErr(f.Close())

	contents, err := os.ReadFile(logPath)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	is.Equal(len(lines), 6)
	is.Equal(lines[0], "batch,game,seed,rows_cleared,turns")
	is.True(strings.HasPrefix(lines[5], "1,1,"))

	summary, err := AnalyzeLogFile(logPath)
	is.NoErr(err)
	assert.Contains(t, summary, "Games played: 5")
	assert.Contains(t, summary, "Batch means:")
}

func TestGameLogContinuesAcrossSessions(t *testing.T) {
	is := is.New(t)
	logPath := filepath.Join(t.TempDir(), "games.csv")

	for session := 0; session < 2; session++ {
		r, err := NewGameRunner(testConfig())
		is.NoErr(err)
		f, err := r.OpenGameLog(logPath)
		is.NoErr(err)
		_, err = r.PlayBatch(context.Background(), equity.Handcrafted(), 2)
		is.NoErr(err)
		_, err = r.PlayBatch(context.Background(), equity.Handcrafted(), 1)
		is.NoErr(err)
		is.NoErr(f.Close())
	}

	contents, err := os.ReadFile(logPath)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	is.Equal(len(lines), 7) // one header, six games
	is.Equal(lines[0], "batch,game,seed,rows_cleared,turns")
	batches := make([]string, 0, 6)
	for _, l := range lines[1:] {
		batches = append(batches, strings.SplitN(l, ",", 2)[0])
	}
	is.Equal(batches, []string{"0", "0", "1", "2", "2", "3"})

	summary, err := AnalyzeLogFile(logPath)
	is.NoErr(err)
	assert.Contains(t, summary, "Games played: 6")
	assert.Contains(t, summary, "   3: ")
}

func TestSeedsRoundTrip(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	seeds := GenerateSeeds(5)
	is.NoErr(SaveSeeds(seeds, path))
	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)

	cfg := testConfig()
	cfg.Set(config.ConfigSeedsFile, path)
	r, err := NewGameRunner(cfg)
	is.NoErr(err)
	is.Equal(r.seedFor(6), seeds[1])
}

func TestLoadSeedsRejectsGarbage(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	var buf bytes.Buffer
	buf.WriteString("# comment\n\nAAAA\n")
	is.NoErr(os.WriteFile(path, buf.Bytes(), 0o644))
	_, err := LoadSeeds(path)
	is.True(err != nil)

	_, err = LoadSeeds(filepath.Join(t.TempDir(), "missing.txt"))
	is.True(err != nil)
}
