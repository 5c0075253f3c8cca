package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	body := `
ticker: AAPL
stock_file: datasets/AAPL_stock.csv
calls_file: datasets/AAPL_calls.csv
puts_file: datasets/AAPL_puts.csv
n: 4
alpha: 0.5
rate: 0.05
tenor_days: 30
solver:
  path: /opt/bonmin/bonmin
  time_limit: 2m
  local: true
  seed: 7
sweep:
  from: 0
  to: 0.5
  step: 0.25
  image: out/curve.png
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "AAPL", cfg.Ticker)
	require.Equal(t, 4, cfg.N)
	require.Equal(t, 0.5, cfg.Alpha)
	require.Equal(t, "/opt/bonmin/bonmin", cfg.Solver.Path)
	require.Equal(t, 2*time.Minute, cfg.Solver.TimeLimit)
	require.True(t, cfg.Solver.Local)
	require.Equal(t, uint64(7), cfg.Solver.Seed)
	require.Equal(t, 0.25, cfg.Sweep.Step)
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alpha: 0.3\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 0.3, cfg.Alpha)
	require.Equal(t, Default().N, cfg.N)
	require.Equal(t, Default().StockFile, cfg.StockFile)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.N = 0
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Alpha = 1.5
	require.Error(t, bad.Validate())

	bad = cfg
	bad.TenorDays = 0
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Sweep.Step = 0
	require.Error(t, bad.Validate())

	bad = cfg
	bad.StockFile = ""
	require.Error(t, bad.Validate())
}

func TestR(t *testing.T) {
	cfg := Default()
	cfg.Rate = 0.0469
	cfg.TenorDays = 32
	require.InDelta(t, 1.00403, cfg.R(), 1e-4)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ALPHADS_SOLVER_PATH", "/usr/local/bin/bonmin")
	cfg := Default()
	cfg.ApplyEnv()
	require.Equal(t, "/usr/local/bin/bonmin", cfg.Solver.Path)
}
