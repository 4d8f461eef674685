package report

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins matches the usual chart resolution for a return distribution.
const DefaultBins = 50

// Histogram is an equal-width binning of the finite returns.
type Histogram struct {
	Edges     []float64 // len(Counts)+1, ascending
	Counts    []float64
	NonFinite int // NaN or ±Inf values left out
}

// NewHistogram bins x into the given number of equal-width bins over
// [min, max]. Non-finite values are counted but not binned.
func NewHistogram(x []float64, bins int) (*Histogram, error) {
	if bins < 1 {
		return nil, fmt.Errorf("bins must be positive, got %d", bins)
	}

	finite := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	h := &Histogram{NonFinite: len(x) - len(finite)}
	if len(finite) == 0 {
		return h, nil
	}
	slices.Sort(finite)

	lo, hi := finite[0], finite[len(finite)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram needs every value strictly below the last edge
	edges[bins] = math.Nextafter(hi, math.Inf(1))

	h.Edges = edges
	h.Counts = stat.Histogram(nil, edges, finite, nil)
	return h, nil
}

// Render draws one bar per bin, scaled so the tallest bar is width cells.
func (h *Histogram) Render(w io.Writer, width int) error {
	if width < 1 {
		width = 1
	}
	peak := floats.Max(append([]float64{0}, h.Counts...))

	var b strings.Builder
	for i, c := range h.Counts {
		n := 0
		if peak > 0 {
			n = int(math.Round(c / peak * float64(width)))
		}
		fmt.Fprintf(&b, "%+9.4f | %-*s %d\n", h.Edges[i], width, strings.Repeat("#", n), int(c))
	}
	if h.NonFinite > 0 {
		fmt.Fprintf(&b, "(%d non-finite returns not shown)\n", h.NonFinite)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
