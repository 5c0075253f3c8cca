package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/banachtech/alphads/solver"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config drives a calibration run. Values come from a YAML file with optional
// environment overrides; everything is passed explicitly downstream.
type Config struct {
	Ticker    string `yaml:"ticker"`
	StockFile string `yaml:"stock_file"`
	CallsFile string `yaml:"calls_file"`
	PutsFile  string `yaml:"puts_file"`

	// N is the number of future stock values. Model size is 2^N - 1 variables.
	N     int     `yaml:"n"`
	Alpha float64 `yaml:"alpha"`
	// Rate is the risk-free rate per annum, TenorDays the period to maturity.
	Rate      float64 `yaml:"rate"`
	TenorDays float64 `yaml:"tenor_days"`

	Solver SolverConfig `yaml:"solver"`
	Sweep  SweepConfig  `yaml:"sweep"`
}

// SolverConfig selects and bounds the optimizer.
type SolverConfig struct {
	// Path of the external MINLP solver binary.
	Path string `yaml:"path"`
	// TimeLimit bounds the wall-clock time of one solve.
	TimeLimit time.Duration `yaml:"time_limit"`
	// Local switches to the built-in Nelder-Mead fallback instead of the
	// external binary.
	Local bool `yaml:"local"`
	// Seed makes local solves reproducible.
	Seed uint64 `yaml:"seed"`
}

// SweepConfig drives the alpha tuning grid and its chart.
type SweepConfig struct {
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
	Step  float64 `yaml:"step"`
	Image string  `yaml:"image"`
}

func Default() Config {
	return Config{
		Ticker:    "META",
		StockFile: "datasets/META_Stock_1y_2023_01_23.csv",
		CallsFile: "datasets/META_calls_2023_02_24.csv",
		PutsFile:  "datasets/META_puts_2023_02_24.csv",
		N:         5,
		Alpha:     0.7,
		Rate:      0.0469,
		TenorDays: 32,
		Solver: SolverConfig{
			Path:      "./solvers/bonmin",
			TimeLimit: 60 * time.Second,
		},
		Sweep: SweepConfig{From: 0, To: 1, Step: 0.1, Image: "images/NormE.png"},
	}
}

// LoadFile reads a YAML config; fields missing from the file keep their
// defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides the solver location from the environment, loading a .env
// file when present. ALPHADS_SOLVER_PATH points at the MINLP binary.
func (c *Config) ApplyEnv() {
	godotenv.Load()
	if v := os.Getenv("ALPHADS_SOLVER_PATH"); v != "" {
		c.Solver.Path = v
	}
}

// R is the risk-free return over the period, (1+rate)^(tenor/365).
func (c Config) R() float64 {
	return math.Pow(1+c.Rate, c.TenorDays/365)
}

// SolverConfig converts the solver section to the solver package's config.
func (c Config) SolverConfig() solver.Config {
	return solver.Config{Path: c.Solver.Path, TimeLimit: c.Solver.TimeLimit}
}

func (c Config) Validate() error {
	if c.N < 1 {
		return fmt.Errorf("config: n must be at least 1, got %d", c.N)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("config: alpha must be in [0,1], got %v", c.Alpha)
	}
	if c.Rate <= -1 {
		return fmt.Errorf("config: rate must be above -1, got %v", c.Rate)
	}
	if c.TenorDays <= 0 {
		return fmt.Errorf("config: tenor_days must be positive, got %v", c.TenorDays)
	}
	if c.StockFile == "" || c.CallsFile == "" || c.PutsFile == "" {
		return fmt.Errorf("config: stock_file, calls_file and puts_file are required")
	}
	if c.Sweep.Step <= 0 || c.Sweep.To < c.Sweep.From {
		return fmt.Errorf("config: invalid sweep grid [%v, %v] step %v", c.Sweep.From, c.Sweep.To, c.Sweep.Step)
	}
	return nil
}
