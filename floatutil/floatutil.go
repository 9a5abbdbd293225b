// Package floatutil collects the small numeric helpers the timing engine
// leans on repeatedly: epsilon-tolerant comparisons for the invariant
// checks in the wiring engine, and the elementwise min/max reductions
// the forward sweep uses when folding multiple arc candidates into a
// single pin value.
package floatutil

import "math"

// DefaultEpsilon is the absolute tolerance used throughout the analyzer
// for floating point invariant checks (post-Elmore 2*beta >= d^2, slew
// shape squares >= 0, and so on).
const DefaultEpsilon = 1.0e-7

// GreaterOrEqual reports whether a >= b within the given absolute epsilon,
// i.e. whether a is not meaningfully less than b.
func GreaterOrEqual(a, b, epsilon float64) bool {
	return a-b > -epsilon
}

// LessOrEqual reports whether a <= b within the given absolute epsilon.
func LessOrEqual(a, b, epsilon float64) bool {
	return b-a > -epsilon
}

// Max returns the largest value in values. Panics on an empty slice: every
// call site folds a non-empty set of arc candidates.
func Max(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Min returns the smallest value in values. Panics on an empty slice.
func Min(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Clamp restricts value to the closed interval [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(value, hi))
}
