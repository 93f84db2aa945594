package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		s.PushInts(c.scores...)
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Iterations(), len(c.scores))
	}
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	s.PushInts(7, 3, 12, 5)
	is.Equal(s.Min(), 3.0)
	is.Equal(s.Max(), 12.0)
	is.Equal(s.Last(), 5.0)
}

func TestConfidence(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	s := &Statistic{}
	s.PushInts(10, 12, 23, 23, 16, 23, 21, 16)
	// 1.96 * 5.2372 / sqrt(8)
	is.True(FuzzyEqual(s.ConfidenceHalfWidth(95), 3.6291481034))
	is.Equal((&Statistic{}).ConfidenceHalfWidth(95), 0.0)
}
