package calib

import (
	"math"

	"github.com/banachtech/alphads/capacity"
)

func callPayoff(s1, k float64) float64 {
	return math.Max(s1-k, 0)
}

func putPayoff(s1, k float64) float64 {
	return math.Max(k-s1, 0)
}

// alphaGamble is the alpha-mixture of the worst and best payoff the contract
// can produce over the outcomes in s: alpha*min + (1-alpha)*max. Values are
// rounded to 1e-6, matching the target price precision and keeping repeated
// runs bit-identical. Strikes outside the outcome range are fine: the payoff
// is evaluated against the boundary outcomes.
func alphaGamble(s capacity.Subset, values []float64, k, alpha float64, payoff func(s1, k float64) float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, i := range s {
		p := payoff(values[i], k)
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return math.Round((alpha*lo+(1-alpha)*hi)*1e6) / 1e6
}
