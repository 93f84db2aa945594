// Package stats keeps running statistics over game scores.
package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's algorithm).
type Statistic struct {
	n    int
	last float64
	min  float64
	max  float64

	mean float64
	m2   float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	s.last = val
	if s.n == 1 {
		s.mean, s.m2 = val, 0
		s.min, s.max = val, val
		return
	}
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

// PushInts adds every value in vals.
func (s *Statistic) PushInts(vals ...int) {
	for _, v := range vals {
		s.Push(float64(v))
	}
}

func (s *Statistic) Mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.mean
}

// Variance is the sample variance.
func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

// ConfidenceHalfWidth is the half-width of the two-tailed confidence
// interval around the mean, for a confidence level given in percent.
func (s *Statistic) ConfidenceHalfWidth(confidence float64) float64 {
	return ZVal(confidence) * s.StandardError()
}

func (s *Statistic) Min() float64    { return s.min }
func (s *Statistic) Max() float64    { return s.max }
func (s *Statistic) Last() float64   { return s.last }
func (s *Statistic) Iterations() int { return s.n }
