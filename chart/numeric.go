package chart

import (
	"math"

	"golang.org/x/exp/constraints"
)

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

// epsilon is the tolerance used when comparing percent-space quantities
// that went through float arithmetic.
const epsilon = 1e-9

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}
