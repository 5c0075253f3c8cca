package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func writeCSV(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadCloses(t *testing.T) {
	path := writeCSV(t, "stock.csv", "Date,Close\n2023-01-20,120.5\n2023-01-21,118.0\n2023-01-22,121.25\n")
	closes, err := LoadCloses(path)
	require.NoError(t, err)
	require.Equal(t, []float64{120.5, 118.0, 121.25}, closes)
}

func TestLoadClosesTooShort(t *testing.T) {
	path := writeCSV(t, "stock.csv", "Date,Close\n2023-01-20,120.5\n")
	_, err := LoadCloses(path)
	var derr *DataError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "stock", derr.Stage)
}

func TestLoadClosesBadValue(t *testing.T) {
	path := writeCSV(t, "stock.csv", "Date,Close\n2023-01-20,abc\n2023-01-21,118.0\n")
	_, err := LoadCloses(path)
	var derr *DataError
	require.ErrorAs(t, err, &derr)
}

func TestDiscretize(t *testing.T) {
	// Range [80, 120], n = 4: bins of width 10 with midpoints 85, 95, 105, 115.
	closes := []float64{80, 84, 95, 97, 102, 111, 120}
	disc, err := Discretize(closes, 4)
	require.NoError(t, err)
	require.Equal(t, []float64{85, 95, 105, 115}, disc.Values)

	require.Len(t, disc.Probs, 4)
	require.InDelta(t, 1.0, floats.Sum(disc.Probs), 1e-12)
	for _, p := range disc.Probs {
		require.Greater(t, p, 0.0)
	}
	// Smoothed counts: bins hold 2, 2, 1 and 2 closes (120 lands in the last).
	require.InDelta(t, 3.0/11.0, disc.Probs[0], 1e-12)
	require.InDelta(t, 2.0/11.0, disc.Probs[2], 1e-12)
	require.InDelta(t, 3.0/11.0, disc.Probs[3], 1e-12)
}

func TestDiscretizeIncreasing(t *testing.T) {
	closes := []float64{312.8, 88.1, 154.0, 201.7, 99.4, 265.2}
	for _, n := range []int{1, 2, 5, 9} {
		disc, err := Discretize(closes, n)
		require.NoError(t, err)
		require.Len(t, disc.Values, n)
		for i := 1; i < n; i++ {
			require.Greater(t, disc.Values[i], disc.Values[i-1])
		}
		require.InDelta(t, 1.0, floats.Sum(disc.Probs), 1e-12)
	}
}

func TestDiscretizeFlatHistory(t *testing.T) {
	closes := []float64{100, 100, 100, 100}
	disc, err := Discretize(closes, 2)
	require.NoError(t, err)
	require.Len(t, disc.Values, 2)
	for i, v := range disc.Values {
		require.InDelta(t, 100.0, v, 1.0)
		if i > 0 {
			require.Greater(t, v, disc.Values[i-1])
		}
	}
}

func TestDiscretizeTooShort(t *testing.T) {
	_, err := Discretize([]float64{100}, 3)
	var derr *DataError
	require.ErrorAs(t, err, &derr)
}
