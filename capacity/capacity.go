package capacity

import "math/bits"

// Eval returns the capacity of the event with bitmask e induced by a Möbius
// inverse: the sum of Möbius values over every enumerated subset contained in e.
func Eval(e uint32, mobius []float64, subsets []Subset) float64 {
	var nu float64
	for j, s := range subsets {
		if b := s.Bits(); e&b == b {
			nu += mobius[j]
		}
	}
	return nu
}

// EvalAll returns the capacity of every event over n outcomes, indexed by event
// bitmask. Entry 0 is the empty event, entry 2^n - 1 the full outcome set.
func EvalAll(n int, mobius []float64, subsets []Subset) []float64 {
	nu := make([]float64, 1<<uint(n))
	for j, s := range subsets {
		b := s.Bits()
		for e := range nu {
			if uint32(e)&b == b {
				nu[e] += mobius[j]
			}
		}
	}
	return nu
}

// IsNormalized reports whether the induced capacity of the full outcome set is
// 1 within tol.
func IsNormalized(n int, mobius []float64, subsets []Subset, tol float64) bool {
	full := uint32(1<<uint(n)) - 1
	d := Eval(full, mobius, subsets) - 1
	return d <= tol && d >= -tol
}

// IsMonotone reports whether the induced capacity is non-negative and monotone
// under set inclusion, up to tol. Removing any single outcome from an event
// must not increase its capacity.
func IsMonotone(n int, mobius []float64, subsets []Subset, tol float64) bool {
	nu := EvalAll(n, mobius, subsets)
	for e, v := range nu {
		if v < -tol {
			return false
		}
		m := uint32(e)
		for m != 0 {
			i := uint(bits.TrailingZeros32(m))
			if nu[uint32(e)&^(uint32(1)<<i)] > v+tol {
				return false
			}
			m &= m - 1
		}
	}
	return true
}
