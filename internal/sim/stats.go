package sim

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// DefaultVaRLevel is the percentile used for Value-at-Risk.
const DefaultVaRLevel = 5.0

var (
	ErrEmptyReturns      = errors.New("no returns to summarize")
	ErrInvalidPercentile = errors.New("percentile must be within [0, 100]")
)

// Summary holds the risk statistics of a return distribution.
type Summary struct {
	MeanReturn float64
	StdReturn  float64 // population standard deviation
	VaR        float64 // return at the VaR percentile
	CVaR       float64 // mean of returns at or below VaR
	Level      float64 // VaR percentile, e.g. 5
}

// Summarize reduces returns to mean, population std and 5% VaR.
func Summarize(returns []float64) (Summary, error) {
	return SummarizeAt(returns, DefaultVaRLevel)
}

// SummarizeAt is Summarize with a caller-chosen VaR percentile.
func SummarizeAt(returns []float64, level float64) (Summary, error) {
	if len(returns) == 0 {
		return Summary{}, ErrEmptyReturns
	}
	if !(level >= 0 && level <= 100) {
		return Summary{}, fmt.Errorf("%w: got %v", ErrInvalidPercentile, level)
	}

	mean, std := stat.PopMeanStdDev(returns, nil)

	sorted := slices.Clone(returns)
	slices.Sort(sorted)
	v := percentileSorted(sorted, level)

	return Summary{
		MeanReturn: mean,
		StdReturn:  std,
		VaR:        v,
		CVaR:       shortfallSorted(sorted, v),
		Level:      level,
	}, nil
}

// Percentile returns the p-th percentile (0..100) of x, interpolating linearly
// between the two nearest order statistics at rank (n-1)*p/100. Any NaN in x
// yields NaN.
func Percentile(x []float64, p float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmptyReturns
	}
	if !(p >= 0 && p <= 100) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidPercentile, p)
	}
	sorted := slices.Clone(x)
	slices.Sort(sorted)
	return percentileSorted(sorted, p), nil
}

// ExpectedShortfall returns the mean of the values at or below the p-th
// percentile of x.
func ExpectedShortfall(x []float64, p float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmptyReturns
	}
	if !(p >= 0 && p <= 100) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidPercentile, p)
	}
	sorted := slices.Clone(x)
	slices.Sort(sorted)
	return shortfallSorted(sorted, percentileSorted(sorted, p)), nil
}

// percentileSorted expects ascending input. slices.Sort orders NaN first.
func percentileSorted(sorted []float64, p float64) float64 {
	if math.IsNaN(sorted[0]) {
		return math.NaN()
	}
	rank := float64(len(sorted)-1) * p / 100
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func shortfallSorted(sorted []float64, threshold float64) float64 {
	if math.IsNaN(threshold) {
		return math.NaN()
	}
	var sum float64
	n := 0
	for _, r := range sorted {
		if r > threshold {
			break
		}
		sum += r
		n++
	}
	return sum / float64(n)
}
