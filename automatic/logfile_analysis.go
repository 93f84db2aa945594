package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/domino14/tetrisbot/stats"
)

// AnalyzeLogFile summarizes a game log written by a GameRunner: overall and
// per-batch means of rows cleared.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	overall := &stats.Statistic{}
	turns := &stats.Statistic{}
	var batchIDs []int
	perBatch := map[int]*stats.Statistic{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == logHeader[0] {
			continue
		}
		if len(record) != len(logHeader) {
			return "", fmt.Errorf("bad record %v", record)
		}
		batch, err := strconv.Atoi(record[0])
		if err != nil {
			return "", err
		}
		rows, err := strconv.Atoi(record[3])
		if err != nil {
			return "", err
		}
		t, err := strconv.Atoi(record[4])
		if err != nil {
			return "", err
		}
		overall.PushInts(rows)
		turns.PushInts(t)
		if _, ok := perBatch[batch]; !ok {
			perBatch[batch] = &stats.Statistic{}
			batchIDs = append(batchIDs, batch)
		}
		perBatch[batch].PushInts(rows)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", overall.Iterations())
	fmt.Fprintf(&sb, "Rows cleared: %.2f ± %.2f (95%%), stdev %.2f, min %.0f, max %.0f\n",
		overall.Mean(), overall.ConfidenceHalfWidth(95), overall.Stdev(), overall.Min(), overall.Max())
	fmt.Fprintf(&sb, "Pieces placed per game: %.2f\n", turns.Mean())
	if len(batchIDs) > 1 {
		sb.WriteString("Batch means:\n")
		for _, id := range batchIDs {
			s := perBatch[id]
			fmt.Fprintf(&sb, "  %4d: %.2f (%d games)\n", id, s.Mean(), s.Iterations())
		}
	}
	return sb.String(), nil
}

// nextBatchID is one past the highest batch number in the game log at path,
// or 0 if there is no log yet.
func nextBatchID(path string) (next int, hasHeader bool, err error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	defer file.Close()
	r := csv.NewReader(file)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return next, hasHeader, nil
		}
		if err != nil {
			return 0, false, err
		}
		if record[0] == logHeader[0] {
			hasHeader = true
			continue
		}
		batch, err := strconv.Atoi(record[0])
		if err != nil {
			return 0, false, fmt.Errorf("bad batch number %q: %w", record[0], err)
		}
		next = max(next, batch+1)
	}
}
