package sim

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// PriceMatrix holds simulated prices: one row per time step, one column per
// path. Row 0 is the initial price on every path.
type PriceMatrix struct {
	m *mat.Dense
}

func newPriceMatrix(cfg Config) *PriceMatrix {
	m := mat.NewDense(cfg.stepsPerYear, cfg.numPaths, nil)
	row := m.RawRowView(0)
	for i := range row {
		row[i] = cfg.initialPrice
	}
	return &PriceMatrix{m: m}
}

// Dims returns (steps, paths).
func (p *PriceMatrix) Dims() (steps, paths int) { return p.m.Dims() }

// At returns the price of path i at step t.
func (p *PriceMatrix) At(t, i int) float64 { return p.m.At(t, i) }

// Row returns a copy of the prices at step t.
func (p *PriceMatrix) Row(t int) []float64 {
	return append([]float64(nil), p.m.RawRowView(t)...)
}

// Path returns a copy of path i over time.
func (p *PriceMatrix) Path(i int) []float64 {
	return mat.Col(nil, i, p.m)
}

// Final returns a copy of the last row.
func (p *PriceMatrix) Final() []float64 {
	steps, _ := p.m.Dims()
	return p.Row(steps - 1)
}

// Equal reports whether both matrices hold bit-identical prices.
func (p *PriceMatrix) Equal(o *PriceMatrix) bool {
	return mat.Equal(p.m, o.m)
}

// stepper holds the per-step constants of the log-Euler update.
type stepper struct {
	drift     float64
	diffusion float64
}

func newStepper(cfg Config) stepper {
	dt := cfg.Dt()
	return stepper{
		drift:     (cfg.mu - 0.5*cfg.sigma*cfg.sigma) * dt,
		diffusion: cfg.sigma * math.Sqrt(dt),
	}
}

// advance fills next[i] from prev[i] with one normal draw per path, in path
// order. Overflow is left to propagate as +Inf.
func (s stepper) advance(prev, next []float64, src NormalSource) {
	for i := range next {
		z := src.NormFloat64()
		next[i] = prev[i] * math.Exp(s.drift+s.diffusion*z)
	}
}

// GeneratePaths simulates cfg.NumPaths() GBM paths sequentially, drawing every
// variate from src. Draws are consumed step by step, path by path within a step.
func GeneratePaths(cfg Config, src NormalSource) *PriceMatrix {
	pm := newPriceMatrix(cfg)
	st := newStepper(cfg)

	for t := 1; t < cfg.stepsPerYear; t++ {
		st.advance(pm.m.RawRowView(t-1), pm.m.RawRowView(t), src)
	}
	return pm
}
