// Package report renders simulation results for humans.
package report

import (
	"fmt"
	"io"

	"gbmsim/internal/sim"
)

// Write prints the summary as three lines: mean, volatility, VaR.
func Write(w io.Writer, s sim.Summary) error {
	_, err := fmt.Fprintf(w,
		"Expected return (mean): %v\nVolatility of returns: %v\n%v%% Value at Risk (VaR): %v\n",
		s.MeanReturn, s.StdReturn, s.Level, s.VaR)
	return err
}

// WriteDetails prints the lines shown in verbose mode after the summary.
func WriteDetails(w io.Writer, s sim.Summary, seed uint64) error {
	_, err := fmt.Fprintf(w,
		"%v%% Expected shortfall (CVaR): %v\nSeed: %d\n",
		s.Level, s.CVaR, seed)
	return err
}

// WriteReference prints a closed-form summary next to its label.
func WriteReference(w io.Writer, s sim.Summary) error {
	_, err := fmt.Fprintf(w,
		"Analytic expected return: %v\nAnalytic volatility: %v\nAnalytic %v%% VaR: %v\nAnalytic %v%% CVaR: %v\n",
		s.MeanReturn, s.StdReturn, s.Level, s.VaR, s.Level, s.CVaR)
	return err
}
