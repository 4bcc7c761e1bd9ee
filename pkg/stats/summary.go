// Package stats computes descriptive statistics over light-curve flux.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/toyinlola/planetscope/pkg/apperr"
	"github.com/toyinlola/planetscope/pkg/interfaces"
	"github.com/toyinlola/planetscope/pkg/quantity"
)

// ErrNoFiniteValues is returned when a series has nothing left after NaN filtering.
var ErrNoFiniteValues = errors.New("stats: no finite flux values")

// ErrOverflow is returned when a statistic exceeds the float64 range.
var ErrOverflow = errors.New("stats: flux statistics overflow float64")

// Summarize computes count, mean, median, population standard deviation,
// peak-to-peak range and interquartile range over the finite values of s.
func Summarize(s quantity.Series) (interfaces.Summary, error) {
	xs := s.Finite()
	if len(xs) == 0 {
		return interfaces.Summary{}, apperr.Computation("computing flux statistics", ErrNoFiniteValues)
	}

	sort.Float64s(xs)

	mean, std := stat.PopMeanStdDev(xs, nil)
	q1 := Percentile(xs, 25)
	q3 := Percentile(xs, 75)

	sum := interfaces.Summary{
		Count:      len(xs),
		Mean:       mean,
		Median:     Percentile(xs, 50),
		StdDev:     std,
		PeakToPeak: floats.Max(xs) - floats.Min(xs),
		IQR:        q3 - q1,
	}
	for _, v := range []float64{sum.Mean, sum.Median, sum.StdDev, sum.PeakToPeak, sum.IQR} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return interfaces.Summary{}, apperr.Computation("computing flux statistics", ErrOverflow)
		}
	}
	return sum, nil
}

// Median returns the median of the finite values of s.
// Infinite samples are treated as missing, like NaN.
func Median(s quantity.Series) (float64, error) {
	xs := s.Finite()
	if len(xs) == 0 {
		return math.NaN(), apperr.Computation("computing median flux", ErrNoFiniteValues)
	}
	sort.Float64s(xs)
	m := Percentile(xs, 50)
	if math.IsInf(m, 0) {
		return math.NaN(), apperr.Computation("computing median flux", ErrOverflow)
	}
	return m, nil
}

// Percentile returns the p-th percentile (0..100) of sorted, finite xs,
// interpolating linearly between the two closest ranks.
// gonum's stat.Quantile does not offer this estimator, so it is computed here.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
