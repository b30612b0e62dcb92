package utils

import (
	"math"

	"golang.org/x/exp/constraints"
)

// SumInt64 adds term(item) over items. Terms must be non-negative; the sum saturates at
// math.MaxInt64 instead of wrapping around.
func SumInt64[T any, N constraints.Integer](items []T, term func(item T) N) int64 {
	var sum int64
	for _, item := range items {
		value := int64(term(item))
		if value > math.MaxInt64-sum {
			return math.MaxInt64
		}
		sum += value
	}
	return sum
}

// MulInt64 multiplies two non-negative values, saturating at math.MaxInt64.
func MulInt64(a int64, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}
