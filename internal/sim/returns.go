package sim

// TerminalReturns computes the simple return of every path over the whole
// horizon: (final - initial) / initial.
func TerminalReturns(pm *PriceMatrix, cfg Config) []float64 {
	final := pm.Final()
	s0 := cfg.initialPrice
	for i, p := range final {
		final[i] = (p - s0) / s0
	}
	return final
}
