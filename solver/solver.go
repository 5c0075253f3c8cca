package solver

import (
	"context"
	"errors"
	"time"
)

// Failure modes of a solve. Callers match with errors.Is; implementations wrap
// these with detail.
var (
	ErrSolverNotFound = errors.New("solver executable not found")
	ErrInfeasible     = errors.New("model is infeasible")
	ErrTimeout        = errors.New("time limit reached")
	ErrSolver         = errors.New("solver failed")
)

// Statuses reported in a Solution.
const (
	StatusOptimal    = "optimal"
	StatusInfeasible = "infeasible"
	StatusTimeout    = "timeout"
	StatusError      = "error"
)

// Residual is one squared error term of the objective: (Coeffs.x - Target)^2.
type Residual struct {
	Coeffs []float64 `json:"coeffs"`
	Target float64   `json:"target"`
}

// Linear is a two-sided linear constraint Lo <= Coeffs.x <= Hi. An equality
// sets Lo == Hi.
type Linear struct {
	Coeffs []float64 `json:"coeffs"`
	Lo     float64   `json:"lo"`
	Hi     float64   `json:"hi"`
}

// Problem is a box-bounded least-squares model with linear constraints,
// minimizing the sum of squared residuals. It doubles as the wire format of
// the external solver contract: encoded as JSON, decoded by the solver binary.
// Integers lists variable indices restricted to integral values; the
// calibration model is purely continuous but the contract admits mixed-integer
// models. Initial is an optional warm-start point.
type Problem struct {
	NumVars   int        `json:"num_vars"`
	Residuals []Residual `json:"residuals"`
	Linear    []Linear   `json:"linear"`
	Lower     []float64  `json:"lower"`
	Upper     []float64  `json:"upper"`
	Integers  []int      `json:"integers,omitempty"`
	Initial   []float64  `json:"initial,omitempty"`
}

// Objective evaluates the sum of squared residuals at x.
func (p *Problem) Objective(x []float64) float64 {
	var sum float64
	for _, r := range p.Residuals {
		var v float64
		for j, c := range r.Coeffs {
			v += c * x[j]
		}
		d := v - r.Target
		sum += d * d
	}
	return sum
}

// Violation returns the largest amount by which x breaks a bound or linear
// constraint of the problem. Zero means x is feasible.
func (p *Problem) Violation(x []float64) float64 {
	var worst float64
	for j, v := range x {
		if p.Lower != nil && p.Lower[j]-v > worst {
			worst = p.Lower[j] - v
		}
		if p.Upper != nil && v-p.Upper[j] > worst {
			worst = v - p.Upper[j]
		}
	}
	for _, l := range p.Linear {
		var v float64
		for j, c := range l.Coeffs {
			v += c * x[j]
		}
		if l.Lo-v > worst {
			worst = l.Lo - v
		}
		if v-l.Hi > worst {
			worst = v - l.Hi
		}
	}
	return worst
}

// Solution is an optimal (or best found) variable assignment.
type Solution struct {
	Status    string    `json:"status"`
	Objective float64   `json:"objective"`
	X         []float64 `json:"x"`
	Message   string    `json:"message,omitempty"`
}

// Config locates and bounds a solve. It is passed explicitly on every call;
// the package holds no global state.
type Config struct {
	// Path of the external MINLP solver binary. Ignored by local solvers.
	Path string `yaml:"path"`
	// TimeLimit bounds the wall-clock solve time. Zero means no limit.
	TimeLimit time.Duration `yaml:"time_limit"`
}

// Solver hands an assembled model to an optimizer and returns the optimal
// assignment, or one of the package error sentinels.
type Solver interface {
	Solve(ctx context.Context, p *Problem, cfg Config) (*Solution, error)
}
