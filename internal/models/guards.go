package models

import "math"

// Finite unwraps an optional reading. It reports false for a nil pointer and
// for non-finite values, so a missing field never silently becomes zero.
func Finite(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

// ClampScore rounds to the nearest integer and clamps into [0, 100].
func ClampScore(v float64) int {
	s := int(math.Round(v))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
