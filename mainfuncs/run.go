package mainfuncs

import (
	"context"
	"fmt"

	"github.com/banachtech/alphads/calib"
	"github.com/banachtech/alphads/config"
	"github.com/banachtech/alphads/solver"
)

// newSolver picks the optimizer from the config: the external MINLP binary by
// default, the built-in Nelder-Mead fallback when solver.local is set.
func newSolver(cfg config.SolverConfig) solver.Solver {
	if cfg.Local {
		return solver.NelderMead{Seed: cfg.Seed}
	}
	return solver.Exec{}
}

// Run performs a single calibration and prints the optimal squared error and
// Möbius inverse per subset of future stock values.
func Run(ctx context.Context, cfg config.Config) error {
	res, err := calib.OptimalMobius(ctx, cfg.N, cfg.Alpha, cfg.R(),
		cfg.StockFile, cfg.CallsFile, cfg.PutsFile, newSolver(cfg.Solver), cfg.SolverConfig())
	if err != nil {
		return err
	}

	fmt.Printf("%s: n = %d, alpha = %.2f, R = %.6f\n\n", cfg.Ticker, cfg.N, cfg.Alpha, cfg.R())
	fmt.Printf("minimum squared error = %v\n\n", res.Err)
	fmt.Println("optimal Mobius inverse:")
	for i, s := range res.Subsets {
		fmt.Printf("m(%v) = %.4f\n", s, res.Mobius[i])
	}
	return nil
}
