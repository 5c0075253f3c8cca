package market

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// BSPrice returns the Black-Scholes price of a European option with strike k,
// spot s, volatility sigma, maturity T in years, dividend yield dy and
// risk-free rate r. option is "c" for a call, "p" for a put. Used as a
// reference price when sanity-checking calibrations against synthetic chains.
func BSPrice(k, s, sigma, T, dy, r float64, option string) float64 {
	x := sigma * math.Sqrt(T)
	d1 := (math.Log(s/k) + (r-dy+0.5*sigma*sigma)*T) / x
	d2 := d1 - x

	N := distuv.Normal{Mu: 0.0, Sigma: 1.0}

	premium := s*math.Exp(-dy*T)*N.CDF(d1) - k*math.Exp(-r*T)*N.CDF(d2)
	if option == "p" {
		premium = -s*math.Exp(-dy*T)*N.CDF(-d1) + k*math.Exp(-r*T)*N.CDF(-d2)
	}
	return premium
}
