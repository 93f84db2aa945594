package tuner

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// NamedWeight pairs a weight with the feature it multiplies.
type NamedWeight struct {
	Feature string  `yaml:"feature"`
	Weight  float64 `yaml:"weight"`
}

// Report is a record of one tuning session.
type Report struct {
	Started       time.Time     `yaml:"started"`
	Finished      time.Time     `yaml:"finished,omitempty"`
	GamesPerBatch int           `yaml:"games_per_batch"`
	StartScore    float64       `yaml:"start_score"`
	BestScore     float64       `yaml:"best_score"`
	Accepted      int           `yaml:"accepted"`
	Rounds        []RoundResult `yaml:"rounds"`
	Weights       []NamedWeight `yaml:"weights"`
}

func newReport(t *Tuner) *Report {
	return &Report{
		Started:       timeNow(),
		GamesPerBatch: t.gamesPerBatch,
		StartScore:    t.state.BestScore,
	}
}

func (r *Report) finalize(t *Tuner) {
	r.Finished = timeNow()
	r.BestScore = t.state.BestScore
	r.Accepted = 0
	for _, rr := range r.Rounds {
		if rr.Accepted {
			r.Accepted++
		}
	}
	r.Weights = make([]NamedWeight, len(t.state.Weights))
	for i, w := range t.state.Weights {
		r.Weights[i] = NamedWeight{Feature: t.names[i], Weight: w}
	}
}

// Write saves the report as YAML.
func (r *Report) Write(path string) error {
	out, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return writeAtomic(path, out)
}

// ReadReport loads a report written by Write.
func ReadReport(path string) (*Report, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := &Report{}
	if err := yaml.Unmarshal(contents, r); err != nil {
		return nil, err
	}
	return r, nil
}
