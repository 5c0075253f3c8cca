package calib

import (
	"context"
	"fmt"

	"github.com/banachtech/alphads/capacity"
	"github.com/banachtech/alphads/market"
	"github.com/banachtech/alphads/solver"
)

// Result of a calibration.
type Result struct {
	// Err is the achieved squared pricing error across all contracts.
	Err float64
	// Mobius holds the optimal Möbius value per subset index.
	Mobius []float64
	// Subsets is the index-subset mapping interpreting Mobius.
	Subsets []capacity.Subset
}

// OptimalMobius computes the Möbius inverse minimizing the squared error
// between no-arbitrage alpha-DS-mixture prices and the market alpha-mixture
// prices of the put and call chains. n is the number of future stock values
// discretized from the history in stockFile, alpha the mixture parameter in
// [0,1] and R the risk-free return over the period. The call blocks until the
// solver returns or cfg.TimeLimit expires; the model it builds holds no state
// across calls. Data errors surface before the solver is ever invoked, and no
// partial result is returned on any failure.
//
// Each added outcome doubles the number of decision variables, so n is capped
// at capacity.MaxOutcomes.
func OptimalMobius(ctx context.Context, n int, alpha, R float64, stockFile, callsFile, putsFile string, s solver.Solver, cfg solver.Config) (Result, error) {
	closes, err := market.LoadCloses(stockFile)
	if err != nil {
		return Result{}, err
	}
	disc, err := market.Discretize(closes, n)
	if err != nil {
		return Result{}, err
	}
	subsets, err := capacity.Enumerate(n)
	if err != nil {
		return Result{}, err
	}
	calls, err := market.LoadQuotes(callsFile)
	if err != nil {
		return Result{}, err
	}
	puts, err := market.LoadQuotes(putsFile)
	if err != nil {
		return Result{}, err
	}

	p, err := Build(disc, subsets, calls, puts, alpha, R, Options{})
	if err != nil {
		return Result{}, err
	}
	sol, err := s.Solve(ctx, p, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("solve n=%d alpha=%v: %w", n, alpha, err)
	}
	return Result{Err: sol.Objective, Mobius: sol.X, Subsets: subsets}, nil
}
