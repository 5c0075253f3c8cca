package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Exec runs an external MINLP solver binary. The binary receives the path of a
// JSON-encoded Problem as its only argument and must print a JSON Solution on
// stdout, with status optimal, infeasible, timeout or error. One process is
// spawned per solve; the call blocks until the solver returns or the time
// limit expires.
type Exec struct{}

func (Exec) Solve(ctx context.Context, p *Problem, cfg Config) (*Solution, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: no path configured", ErrSolverNotFound)
	}
	bin, err := exec.LookPath(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSolverNotFound, cfg.Path)
	}
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}

	f, err := os.CreateTemp("", "alphads-model-*.json")
	if err != nil {
		return nil, fmt.Errorf("%w: temp model file: %v", ErrSolver, err)
	}
	defer os.Remove(f.Name())
	if err := json.NewEncoder(f).Encode(p); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: encode model: %v", ErrSolver, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: write model: %v", ErrSolver, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, f.Name())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Solver wrappers fork children that inherit the stdout pipe. Killing the
	// direct child on deadline is not enough: Wait would still block on the
	// pipe until every descendant exits. WaitDelay forces the pipe closed so
	// the time limit bounds the call, not just the child.
	cmd.WaitDelay = 100 * time.Millisecond
	runErr := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, cfg.TimeLimit)
		}
		return nil, ctxErr
	}
	if runErr != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrSolver, runErr, strings.TrimSpace(stderr.String()))
	}

	var sol Solution
	if err := json.Unmarshal(stdout.Bytes(), &sol); err != nil {
		return nil, fmt.Errorf("%w: bad solution payload: %v", ErrSolver, err)
	}
	switch sol.Status {
	case StatusOptimal:
		if len(sol.X) != p.NumVars {
			return nil, fmt.Errorf("%w: got %d variables, want %d", ErrSolver, len(sol.X), p.NumVars)
		}
		return &sol, nil
	case StatusInfeasible:
		return nil, fmt.Errorf("%w: %s", ErrInfeasible, sol.Message)
	case StatusTimeout:
		return nil, fmt.Errorf("%w: %s", ErrTimeout, sol.Message)
	default:
		return nil, fmt.Errorf("%w: status %q: %s", ErrSolver, sol.Status, sol.Message)
	}
}
