package market

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"strings"
)

// Discretization is a finite model of the underlying at maturity: n strictly
// increasing terminal stock values with strictly positive probabilities that
// sum to 1.
type Discretization struct {
	Values []float64
	Probs  []float64
}

// LoadCloses reads the Close column of a stock price CSV in chronological
// order. At least two observations are required to span a future range.
func LoadCloses(path string) ([]float64, error) {
	rows, err := readCSV(path, "stock")
	if err != nil {
		return nil, err
	}
	col, err := findColumn(rows[0], "Close", "stock", path)
	if err != nil {
		return nil, err
	}
	closes := make([]float64, 0, len(rows)-1)
	for i, row := range rows[1:] {
		p, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return nil, dataErrf("stock", "%s row %d: bad close %q", path, i+2, row[col])
		}
		if p <= 0 {
			return nil, dataErrf("stock", "%s row %d: close must be positive, got %v", path, i+2, p)
		}
		closes = append(closes, p)
	}
	if len(closes) < 2 {
		return nil, dataErrf("stock", "%s: need at least 2 observations, got %d", path, len(closes))
	}
	return closes, nil
}

// Discretize buckets the historical closes into n equally wide bins between the
// rounded historical minimum and maximum and takes bin midpoints (rounded to
// one decimal) as the future stock values. Probabilities are the smoothed
// empirical bin frequencies, so they are strictly positive and sum to 1.
// A flat history is widened by half a unit on each side so the outcomes stay
// strictly increasing around the constant price.
func Discretize(closes []float64, n int) (Discretization, error) {
	if n < 1 {
		return Discretization{}, dataErrf("stock", "need at least 1 future value, got %d", n)
	}
	if len(closes) < 2 {
		return Discretization{}, dataErrf("stock", "need at least 2 observations, got %d", len(closes))
	}
	lo, hi := closes[0], closes[0]
	for _, p := range closes {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	lo, hi = math.Round(lo), math.Round(hi)
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}
	step := (hi - lo) / float64(n)

	values := make([]float64, n)
	for i := range values {
		values[i] = math.Round((lo+step*(float64(i)+0.5))*10) / 10
	}
	// Rounding to one decimal can merge midpoints when the grid is finer than
	// 0.1; fall back to the raw midpoints in that case.
	for i := 1; i < n; i++ {
		if values[i] <= values[i-1] {
			for j := range values {
				values[j] = lo + step*(float64(j)+0.5)
			}
			break
		}
	}

	counts := make([]int, n)
	for _, p := range closes {
		i := int((p - lo) / step)
		if i < 0 {
			i = 0
		}
		if i >= n {
			i = n - 1
		}
		counts[i]++
	}
	probs := make([]float64, n)
	total := float64(len(closes) + n)
	for i, c := range counts {
		probs[i] = float64(c+1) / total
	}
	return Discretization{Values: values, Probs: probs}, nil
}

// readCSV loads all records of a CSV file including the header row.
func readCSV(path, stage string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dataErrf(stage, "open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, dataErrf(stage, "read %s: %v", path, err)
	}
	if len(rows) < 2 {
		return nil, dataErrf(stage, "%s: no data rows", path)
	}
	return rows, nil
}

func findColumn(header []string, name, stage, path string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, dataErrf(stage, "%s: no %q column", path, name)
}
