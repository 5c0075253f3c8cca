package market

import (
	"strconv"
	"strings"
)

// OptionQuote is a single call or put quote at one strike.
type OptionQuote struct {
	Strike float64
	Bid    float64
	Ask    float64
}

// AlphaPrice collapses the bid-ask interval of a quote to its alpha-mixture
// price alpha*bid + (1-alpha)*ask.
func AlphaPrice(q OptionQuote, alpha float64) float64 {
	return alpha*q.Bid + (1-alpha)*q.Ask
}

// LoadQuotes reads strike, bid and ask columns of an option chain CSV. Quotes
// with bid above ask or negative prices are rejected up front, before any
// model is built.
func LoadQuotes(path string) ([]OptionQuote, error) {
	rows, err := readCSV(path, "quotes")
	if err != nil {
		return nil, err
	}
	cols := make([]int, 3)
	for i, name := range []string{"strike", "bid", "ask"} {
		cols[i], err = findColumn(rows[0], name, "quotes", path)
		if err != nil {
			return nil, err
		}
	}
	quotes := make([]OptionQuote, 0, len(rows)-1)
	for i, row := range rows[1:] {
		var v [3]float64
		for j, col := range cols {
			v[j], err = strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				return nil, dataErrf("quotes", "%s row %d: bad value %q", path, i+2, row[col])
			}
		}
		q := OptionQuote{Strike: v[0], Bid: v[1], Ask: v[2]}
		if err := q.Validate(); err != nil {
			return nil, dataErrf("quotes", "%s row %d: %v", path, i+2, err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// Validate checks the no-arbitrage consistency of a single quote.
func (q OptionQuote) Validate() error {
	if q.Strike <= 0 {
		return dataErrf("quotes", "strike must be positive, got %v", q.Strike)
	}
	if q.Bid < 0 {
		return dataErrf("quotes", "negative bid %v at strike %v", q.Bid, q.Strike)
	}
	if q.Bid > q.Ask {
		return dataErrf("quotes", "bid %v above ask %v at strike %v", q.Bid, q.Ask, q.Strike)
	}
	return nil
}
