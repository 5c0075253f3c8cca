package calib

import (
	"fmt"
	"math"

	"github.com/banachtech/alphads/capacity"
	"github.com/banachtech/alphads/market"
	"github.com/banachtech/alphads/solver"
)

// singletonEps keeps singleton Möbius values strictly positive, so every
// outcome carries some mass in the calibrated belief function.
const singletonEps = 1e-4

// Options tweaks model assembly. The zero value is the default model.
type Options struct {
	// NoBands drops the per-contract bid-ask feasibility bands, leaving only
	// the alpha-mixture targets in the objective. The resulting model is
	// always feasible.
	NoBands bool
}

// Build assembles the calibration model: one decision variable per non-empty
// subset of outcomes holding its Möbius value, bounded to [0,1] with the
// epsilon floor on singletons. The Möbius values are restricted to be
// non-negative, i.e. the calibrated capacity is a belief function; together
// with the unit-sum constraint that makes every induced capacity value
// non-negative and monotone by construction. Each contract contributes one
// squared residual (model price minus alpha-mixture target) and, unless
// disabled, a no-arbitrage band keeping the model price inside [bid, ask].
// Model prices are discounted by R. The smoothed empirical outcome
// probabilities warm-start the singleton variables.
func Build(disc market.Discretization, subsets []capacity.Subset, calls, puts []market.OptionQuote, alpha, R float64, opts Options) (*solver.Problem, error) {
	n := len(disc.Values)
	if n == 0 || len(disc.Probs) != n {
		return nil, fmt.Errorf("calib: discretization with %d values and %d probabilities", n, len(disc.Probs))
	}
	if len(subsets) != (1<<uint(n))-1 {
		return nil, fmt.Errorf("calib: %d subsets for %d outcomes, want %d", len(subsets), n, (1<<uint(n))-1)
	}
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("calib: alpha must be in [0,1], got %v", alpha)
	}
	if R <= 0 || math.IsNaN(R) {
		return nil, fmt.Errorf("calib: risk-free return must be positive, got %v", R)
	}
	for _, q := range append(append([]market.OptionQuote{}, calls...), puts...) {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}

	nv := len(subsets)
	p := &solver.Problem{
		NumVars: nv,
		Lower:   make([]float64, nv),
		Upper:   make([]float64, nv),
		Initial: make([]float64, nv),
	}
	for j := range subsets {
		p.Upper[j] = 1
		if j < n {
			p.Lower[j] = singletonEps
			p.Initial[j] = disc.Probs[j]
		}
	}

	ones := make([]float64, nv)
	for j := range ones {
		ones[j] = 1
	}
	p.Linear = []solver.Linear{{Coeffs: ones, Lo: 1, Hi: 1}}

	add := func(q market.OptionQuote, payoff func(s1, k float64) float64) {
		coeffs := make([]float64, nv)
		for j, s := range subsets {
			coeffs[j] = alphaGamble(s, disc.Values, q.Strike, alpha, payoff) / R
		}
		p.Residuals = append(p.Residuals, solver.Residual{Coeffs: coeffs, Target: market.AlphaPrice(q, alpha)})
		if !opts.NoBands {
			p.Linear = append(p.Linear, solver.Linear{Coeffs: coeffs, Lo: q.Bid, Hi: q.Ask})
		}
	}
	for _, q := range calls {
		add(q, callPayoff)
	}
	for _, q := range puts {
		add(q, putPayoff)
	}
	return p, nil
}
