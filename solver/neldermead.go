package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// feasTol is the constraint violation tolerated in a local solution.
const feasTol = 1e-4

// DefaultRestarts is the number of randomized restarts used when NelderMead
// is configured with zero.
const DefaultRestarts = 4

// NelderMead solves calibration models in-process with gonum's Nelder-Mead
// simplex search, for tests and environments without the external MINLP
// binary. It only handles problems whose single equality constraint is the
// unit simplex sum(x) = 1 over non-negative variables: the simplex is enforced
// exactly through a softmax change of variables, and the bounds and bid-ask
// bands enter as escalating quadratic penalties. Integer variables are not
// supported. It is a local heuristic, not a global MINLP solver.
type NelderMead struct {
	// Restarts adds randomized restarts around the warm-start point.
	Restarts int
	// Seed selects the restart stream. Solves are reproducible for a fixed
	// seed; zero is a valid seed.
	Seed uint64
}

func (nm NelderMead) Solve(ctx context.Context, p *Problem, cfg Config) (*Solution, error) {
	if len(p.Integers) > 0 {
		return nil, fmt.Errorf("%w: local solver does not handle integer variables", ErrSolver)
	}
	bands, err := splitSimplex(p)
	if err != nil {
		return nil, err
	}

	n := p.NumVars
	t0 := make([]float64, n)
	if p.Initial != nil {
		for j, v := range p.Initial {
			t0[j] = math.Log(math.Max(v, 1e-8))
		}
	}

	restarts := nm.Restarts
	if restarts <= 0 {
		restarts = DefaultRestarts
	}
	rng := rand.New(rand.NewSource(nm.Seed))

	var deadline time.Time
	if cfg.TimeLimit > 0 {
		deadline = time.Now().Add(cfg.TimeLimit)
	}

	weight := 1e4
	obj := func(t []float64) float64 {
		x := softmax(t)
		return p.Objective(x) + weight*penalty(p, bands, x)
	}
	problem := optimize.Problem{Func: obj}

	bestT := append([]float64(nil), t0...)
	bestF := obj(bestT)
	timedOut := false

	minimize := func(start []float64) {
		if timedOut || ctx.Err() != nil {
			return
		}
		settings := &optimize.Settings{}
		if !deadline.IsZero() {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				timedOut = true
				return
			}
			settings.Runtime = remaining
		}
		res, err := optimize.Minimize(problem, start, settings, &optimize.NelderMead{})
		if err != nil || res == nil {
			return
		}
		if res.F < bestF {
			bestF = res.F
			bestT = append(bestT[:0], res.X...)
		}
	}

	// First round explores from the warm start and random perturbations of it,
	// later rounds refine the incumbent under stiffer penalties.
	minimize(t0)
	for r := 0; r < restarts; r++ {
		start := make([]float64, n)
		for j := range start {
			start[j] = t0[j] + rng.NormFloat64()
		}
		minimize(start)
	}
	for _, w := range []float64{1e6, 1e8} {
		weight = w
		bestF = obj(bestT)
		minimize(append([]float64(nil), bestT...))
	}

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, err
	}
	x := softmax(bestT)
	if v := p.Violation(x); v > feasTol {
		if timedOut {
			return nil, fmt.Errorf("%w: no feasible point within %s", ErrTimeout, cfg.TimeLimit)
		}
		return nil, fmt.Errorf("%w: best point violates constraints by %g", ErrInfeasible, v)
	}
	return &Solution{Status: StatusOptimal, Objective: p.Objective(x), X: x}, nil
}

// splitSimplex separates the unit-simplex equality from the band constraints,
// rejecting problem shapes the local solver cannot handle.
func splitSimplex(p *Problem) ([]Linear, error) {
	var bands []Linear
	found := false
	for _, l := range p.Linear {
		if l.Lo != l.Hi {
			bands = append(bands, l)
			continue
		}
		if found {
			return nil, fmt.Errorf("%w: local solver handles a single equality constraint", ErrSolver)
		}
		if l.Lo != 1 {
			return nil, fmt.Errorf("%w: equality is not the unit simplex", ErrSolver)
		}
		for _, c := range l.Coeffs {
			if c != 1 {
				return nil, fmt.Errorf("%w: equality is not the unit simplex", ErrSolver)
			}
		}
		found = true
	}
	if !found {
		return nil, fmt.Errorf("%w: missing unit simplex constraint", ErrSolver)
	}
	return bands, nil
}

// penalty sums squared violations of the box bounds and band constraints at x.
func penalty(p *Problem, bands []Linear, x []float64) float64 {
	var pen float64
	for j, v := range x {
		if p.Lower != nil && v < p.Lower[j] {
			d := p.Lower[j] - v
			pen += d * d
		}
		if p.Upper != nil && v > p.Upper[j] {
			d := v - p.Upper[j]
			pen += d * d
		}
	}
	for _, l := range bands {
		v := floats.Dot(l.Coeffs, x)
		if v < l.Lo {
			d := l.Lo - v
			pen += d * d
		}
		if v > l.Hi {
			d := v - l.Hi
			pen += d * d
		}
	}
	return pen
}

// softmax maps unconstrained parameters onto the unit simplex.
func softmax(t []float64) []float64 {
	x := make([]float64, len(t))
	m := floats.Max(t)
	var z float64
	for j, v := range t {
		x[j] = math.Exp(v - m)
		z += x[j]
	}
	for j := range x {
		x[j] /= z
	}
	return x
}
