package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		p    float64
		want float64
	}{
		{name: "interpolated low tail", x: []float64{4, 1, 3, 2}, p: 5, want: 1.15},
		{name: "interpolated middle", x: []float64{15, 20, 35, 40, 50}, p: 40, want: 29},
		{name: "exact rank", x: []float64{15, 20, 35, 40, 50}, p: 50, want: 35},
		{name: "minimum", x: []float64{3, -2, 7}, p: 0, want: -2},
		{name: "maximum", x: []float64{3, -2, 7}, p: 100, want: 7},
		{name: "single value", x: []float64{0.25}, p: 5, want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Percentile(tt.x, tt.p)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestPercentile_DoesNotReorderInput(t *testing.T) {
	x := []float64{3, 1, 2}
	_, err := Percentile(x, 50)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, x)
}

func TestPercentile_Errors(t *testing.T) {
	_, err := Percentile(nil, 5)
	assert.ErrorIs(t, err, ErrEmptyReturns)

	for _, p := range []float64{-1, 100.5, math.NaN()} {
		_, err = Percentile([]float64{1}, p)
		assert.ErrorIs(t, err, ErrInvalidPercentile)
	}
}

func TestPercentile_NaNPropagates(t *testing.T) {
	got, err := Percentile([]float64{1, math.NaN(), 3}, 50)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)

	assert.InDelta(t, 5.0, s.MeanReturn, 1e-12)
	// population std, divisor n
	assert.InDelta(t, 2.0, s.StdReturn, 1e-12)
	// rank 7*0.05 = 0.35 between 2 and 4
	assert.InDelta(t, 2.7, s.VaR, 1e-12)
	assert.InDelta(t, 2.0, s.CVaR, 1e-12)
	assert.Equal(t, DefaultVaRLevel, s.Level)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize([]float64{})
	assert.True(t, errors.Is(err, ErrEmptyReturns))
}

func TestSummarizeAt(t *testing.T) {
	returns := []float64{-0.30, -0.20, -0.10, 0.0, 0.10, 0.20, 0.30, 0.40, 0.50, 0.60}

	s, err := SummarizeAt(returns, 25)
	require.NoError(t, err)
	// rank 9*0.25 = 2.25
	assert.InDelta(t, -0.075, s.VaR, 1e-12)
	assert.InDelta(t, -0.20, s.CVaR, 1e-12)

	_, err = SummarizeAt(returns, 101)
	assert.ErrorIs(t, err, ErrInvalidPercentile)
}

func TestExpectedShortfall(t *testing.T) {
	es, err := ExpectedShortfall([]float64{-0.10, -0.05, -0.02, 0.0, 0.02, 0.05, 0.10, 0.15, 0.20, 0.25}, 20)
	require.NoError(t, err)
	// threshold is -0.05 + 0.8*0.03 = -0.026
	assert.InDelta(t, -0.075, es, 1e-12)

	_, err = ExpectedShortfall(nil, 5)
	assert.ErrorIs(t, err, ErrEmptyReturns)
}

func TestSummarize_VaRNotAboveMedian(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		cfg := mustConfig(t, 0.07, 0.4, 60, 257, 100)
		returns := TerminalReturns(GeneratePaths(cfg, NewSource(seed)), cfg)

		s, err := Summarize(returns)
		require.NoError(t, err)
		median, err := Percentile(returns, 50)
		require.NoError(t, err)

		assert.LessOrEqual(t, s.VaR, median, "seed %d", seed)
		assert.LessOrEqual(t, s.CVaR, s.VaR, "seed %d", seed)
		assert.GreaterOrEqual(t, s.StdReturn, 0.0)
	}
}
