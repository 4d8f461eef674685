package sim

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Run(t *testing.T) {
	cfg := mustConfig(t, 0.07, 0.15, 252, 1000, 100)
	e := NewEngine(42, 0, DefaultVaRLevel, zerolog.Nop())

	res, err := e.Run(cfg)
	require.NoError(t, err)

	assert.Len(t, res.Returns, 1000)
	assert.Equal(t, cfg, res.Config)
	assert.True(t, res.Paths.Equal(GeneratePaths(cfg, NewSource(42))))

	again, err := NewEngine(42, 0, DefaultVaRLevel, zerolog.Nop()).Run(cfg)
	require.NoError(t, err)
	assert.Equal(t, res.Summary, again.Summary)
}

func TestEngine_RunParallel(t *testing.T) {
	cfg := mustConfig(t, 0.07, 0.15, 100, 2500, 100)

	a, err := NewEngine(7, 2, DefaultVaRLevel, zerolog.Nop()).Run(cfg)
	require.NoError(t, err)
	b, err := NewEngine(7, 5, DefaultVaRLevel, zerolog.Nop()).Run(cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Returns, b.Returns)
	assert.Equal(t, a.Summary, b.Summary)
}

func TestEngine_Convergence(t *testing.T) {
	if testing.Short() {
		t.Skip("100k paths")
	}
	cfg := mustConfig(t, 0.07, 0.15, 252, 100000, 100)

	for _, workers := range []int{0, 4} {
		res, err := NewEngine(1, workers, DefaultVaRLevel, zerolog.Nop()).Run(cfg)
		require.NoError(t, err)

		s := res.Summary
		assert.GreaterOrEqual(t, s.MeanReturn, 0.03)
		assert.LessOrEqual(t, s.MeanReturn, 0.11)
		assert.GreaterOrEqual(t, s.StdReturn, 0.10)
		assert.LessOrEqual(t, s.StdReturn, 0.20)
		assert.Less(t, s.VaR, 0.0)
	}
}
