package mainfuncs

import (
	"testing"

	"github.com/banachtech/alphads/config"
	"github.com/banachtech/alphads/solver"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	norm := normalize([]float64{2, 6, 4})
	require.Equal(t, []float64{0, 1, 0.5}, norm)

	flat := normalize([]float64{3, 3, 3})
	require.Equal(t, []float64{0, 0, 0}, flat)
}

func TestNewSolver(t *testing.T) {
	s := newSolver(config.SolverConfig{Local: true, Seed: 5})
	require.Equal(t, solver.NelderMead{Seed: 5}, s)

	s = newSolver(config.SolverConfig{Path: "./solvers/bonmin"})
	require.Equal(t, solver.Exec{}, s)
}
