package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadQuotes(t *testing.T) {
	path := writeCSV(t, "calls.csv", "contractSymbol,strike,bid,ask\nMETA230224C100,100,21.5,22.1\nMETA230224C110,110,13.0,13.6\n")
	quotes, err := LoadQuotes(path)
	require.NoError(t, err)
	require.Equal(t, []OptionQuote{
		{Strike: 100, Bid: 21.5, Ask: 22.1},
		{Strike: 110, Bid: 13.0, Ask: 13.6},
	}, quotes)
}

func TestLoadQuotesBidAboveAsk(t *testing.T) {
	path := writeCSV(t, "calls.csv", "strike,bid,ask\n100,22.5,22.1\n")
	_, err := LoadQuotes(path)
	var derr *DataError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "quotes", derr.Stage)
}

func TestLoadQuotesMissingColumn(t *testing.T) {
	path := writeCSV(t, "calls.csv", "strike,bid\n100,22.5\n")
	_, err := LoadQuotes(path)
	var derr *DataError
	require.ErrorAs(t, err, &derr)
}

func TestAlphaPrice(t *testing.T) {
	q := OptionQuote{Strike: 100, Bid: 10, Ask: 12}
	require.InDelta(t, 12.0, AlphaPrice(q, 0), 1e-12)
	require.InDelta(t, 10.0, AlphaPrice(q, 1), 1e-12)
	require.InDelta(t, 11.0, AlphaPrice(q, 0.5), 1e-12)
	require.InDelta(t, 10.6, AlphaPrice(q, 0.7), 1e-12)
}

func TestValidateQuote(t *testing.T) {
	require.NoError(t, OptionQuote{Strike: 100, Bid: 1, Ask: 2}.Validate())
	require.Error(t, OptionQuote{Strike: 100, Bid: -1, Ask: 2}.Validate())
	require.Error(t, OptionQuote{Strike: 0, Bid: 1, Ask: 2}.Validate())
	require.Error(t, OptionQuote{Strike: 100, Bid: 3, Ask: 2}.Validate())
}

func TestBSPriceParity(t *testing.T) {
	// Put-call parity: c - p = s*exp(-dy*T) - k*exp(-r*T).
	s, k, sigma, T, dy, r := 100.0, 95.0, 0.3, 0.5, 0.01, 0.04
	c := BSPrice(k, s, sigma, T, dy, r, "c")
	p := BSPrice(k, s, sigma, T, dy, r, "p")
	want := s*math.Exp(-dy*T) - k*math.Exp(-r*T)
	require.InDelta(t, want, c-p, 1e-9)
	require.Greater(t, c, 0.0)
	require.Greater(t, p, 0.0)
}
