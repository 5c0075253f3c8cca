package mainfuncs

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banachtech/alphads/calib"
	"github.com/banachtech/alphads/config"
	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Tune calibrates across the configured alpha grid and renders the min-max
// normalized squared errors as a curve, one full solve per grid point.
func Tune(ctx context.Context, cfg config.Config) error {
	var alphas []float64
	for a := cfg.Sweep.From; a <= cfg.Sweep.To+1e-9; a += cfg.Sweep.Step {
		alphas = append(alphas, math.Round(a*100)/100)
	}

	s := newSolver(cfg.Solver)
	scfg := cfg.SolverConfig()
	errs := make([]float64, len(alphas))
	bar := progressBar(len(alphas))
	for i, a := range alphas {
		bar.Describe(fmt.Sprintf("alpha = %.2f\t", a))
		res, err := calib.OptimalMobius(ctx, cfg.N, a, cfg.R(),
			cfg.StockFile, cfg.CallsFile, cfg.PutsFile, s, scfg)
		if err != nil {
			return fmt.Errorf("alpha = %.2f: %w", a, err)
		}
		errs[i] = res.Err
		bar.Add(1)
	}

	norm := normalize(errs)
	if err := plotCurve(cfg.Ticker, alphas, norm, cfg.Sweep.Image); err != nil {
		return err
	}

	fmt.Printf("tuning %s:\n", cfg.Ticker)
	for i, a := range alphas {
		fmt.Printf("alpha = %.2f  E = %.8f  normalized = %.4f\n", a, errs[i], norm[i])
	}
	fmt.Printf("curve saved to %s\n", cfg.Sweep.Image)
	return nil
}

// normalize maps errors to [0,1] by min-max scaling. A flat curve maps to zeros.
func normalize(errs []float64) []float64 {
	lo, hi := errs[0], errs[0]
	for _, e := range errs {
		lo = math.Min(lo, e)
		hi = math.Max(hi, e)
	}
	out := make([]float64, len(errs))
	if hi == lo {
		return out
	}
	for i, e := range errs {
		out[i] = (e - lo) / (hi - lo)
	}
	return out
}

func plotCurve(ticker string, alphas, norm []float64, image string) error {
	p := plot.New()
	p.Title.Text = "Normalized optimal squared error as a function of alpha"
	p.X.Label.Text = "alpha"
	p.Y.Label.Text = "normalized E"

	xys := make(plotter.XYs, len(alphas))
	for i := range alphas {
		xys[i].X = alphas[i]
		xys[i].Y = norm[i]
	}
	if err := plotutil.AddLinePoints(p, ticker, xys); err != nil {
		return err
	}
	if dir := filepath.Dir(image); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, image)
}

func progressBar(length int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		length,
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowDescriptionAtLineEnd())
}
