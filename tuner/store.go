package tuner

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tetrisbot/equity"
)

var (
	ErrMalformedWeights = errors.New("malformed weights file")
	ErrWeightCount      = errors.New("weights file has the wrong number of weights")
	ErrMalformedScore   = errors.New("malformed score file")
)

// Store persists the weight vector and the best average score as plain
// text: one weight per line, and a single number.
type Store struct {
	WeightsPath string
	ScorePath   string
}

// LoadWeights reads exactly n weights. A missing file yields the zero
// vector, which is written out so the next session finds it.
func (s *Store) LoadWeights(n int) (equity.Weights, error) {
	contents, err := os.ReadFile(s.WeightsPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", s.WeightsPath).Msg("no-weights-file-using-zero-vector")
		w := make(equity.Weights, n)
		return w, s.SaveWeights(w)
	}
	if err != nil {
		return nil, err
	}
	w, err := ParseWeights(contents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.WeightsPath, err)
	}
	if len(w) != n {
		return nil, fmt.Errorf("%s has %d weights, expected %d: %w",
			s.WeightsPath, len(w), n, ErrWeightCount)
	}
	return w, nil
}

// ParseWeights reads one finite float per non-blank line.
func ParseWeights(contents []byte) (equity.Weights, error) {
	var w equity.Weights
	scanner := bufio.NewScanner(bytes.NewReader(contents))
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil || !finite(v) {
			return nil, fmt.Errorf("line %d: %q: %w", lineNum, line, ErrMalformedWeights)
		}
		w = append(w, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Store) SaveWeights(w equity.Weights) error {
	var buf bytes.Buffer
	for _, v := range w {
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		buf.WriteByte('\n')
	}
	return writeAtomic(s.WeightsPath, buf.Bytes())
}

// LoadScore reads the best average score. A missing file means 0, and is
// written out.
func (s *Store) LoadScore() (float64, error) {
	contents, err := os.ReadFile(s.ScorePath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", s.ScorePath).Msg("no-score-file-using-zero")
		return 0, s.SaveScore(0)
	}
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(contents)), 64)
	if err != nil || !finite(v) {
		return 0, fmt.Errorf("%s: %w", s.ScorePath, ErrMalformedScore)
	}
	return v, nil
}

func (s *Store) SaveScore(score float64) error {
	return writeAtomic(s.ScorePath, []byte(strconv.FormatFloat(score, 'g', -1, 64)+"\n"))
}

// Save writes both files.
func (s *Store) Save(st *State) error {
	if err := s.SaveWeights(st.Weights); err != nil {
		return err
	}
	return s.SaveScore(st.BestScore)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func writeAtomic(path string, contents []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, contents, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
