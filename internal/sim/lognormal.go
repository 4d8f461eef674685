package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Lognormal returns the closed-form statistics of the terminal simple return
// implied by cfg, with VaR taken at the given percentile. Under GBM the
// terminal log return over horizon T is normal with mean (mu - sigma^2/2)T and
// variance sigma^2 T.
func Lognormal(cfg Config, level float64) (Summary, error) {
	if !(level > 0 && level < 100) {
		return Summary{}, fmt.Errorf("%w: closed form needs (0, 100), got %v", ErrInvalidPercentile, level)
	}
	T := cfg.Horizon()
	mu, sigma := cfg.mu, cfg.sigma

	growth := math.Exp(mu * T)
	std := growth * math.Sqrt(math.Expm1(sigma*sigma*T))

	m := (mu - 0.5*sigma*sigma) * T
	s := sigma * math.Sqrt(T)
	z := distuv.UnitNormal.Quantile(level / 100)
	v := math.Expm1(m + s*z)

	// E[R | R <= v] for a lognormal: e^{m+s²/2} Φ(z - s) / Φ(z) - 1
	cvar := math.Exp(m+0.5*s*s)*distuv.UnitNormal.CDF(z-s)/(level/100) - 1

	return Summary{
		MeanReturn: growth - 1,
		StdReturn:  std,
		VaR:        v,
		CVaR:       cvar,
		Level:      level,
	}, nil
}
