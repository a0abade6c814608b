package datautil

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Add returns a + b.
func Add[T Number](a, b T) T {
	return a + b
}

// Inc returns a + 1.
func Inc[T Number](a T) T {
	return a + 1
}

// Dec returns a - 1.
func Dec[T Number](a T) T {
	return a - 1
}

// Clamp limits a to the range [minimum, maximum].
func Clamp[T constraints.Ordered](minimum, maximum, a T) T {
	return min(max(a, minimum), maximum)
}

// Mean returns the arithmetic mean of data. The boolean is false when data
// is empty.
func Mean[T Number](data []T) (float64, bool) {
	if len(data) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	return sum / float64(len(data)), true
}

// Median returns the median of data, averaging the two middle values when
// the length is even. The boolean is false when data is empty.
func Median[T Number](data []T) (float64, bool) {
	n := len(data)
	if n == 0 {
		return 0, false
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)
	if n%2 == 0 {
		return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2, true
	}
	return float64(sorted[n/2]), true
}

// HardRound rounds a to decimals places with halves rounded up, truncating
// toward zero after the shift. A negative decimals rounds to tens, hundreds
// and so on.
//
// Example:
//
//	HardRound(1, 12.345)  //=> 12.3
//	HardRound(-1, 12.345) //=> 10
func HardRound(decimals int, a float64) float64 {
	scale := math.Pow10(decimals)
	return math.Trunc(a*scale+0.5) / scale
}

// SafeDivide returns a / denominator, or a itself when denominator is zero.
func SafeDivide[T Number](denominator, a T) float64 {
	if denominator == 0 {
		return float64(a)
	}
	return float64(a) / float64(denominator)
}

// SafeDivideDefault returns a / denominator, dividing by defaultDenominator
// instead when denominator is zero. defaultDenominator must not be zero.
func SafeDivideDefault[T Number](defaultDenominator, denominator,
	a T) (float64, error) {

	if defaultDenominator == 0 {
		return 0, fmt.Errorf("%w: default denominator can not be 0",
			ErrInvalidArgument)
	}
	if denominator == 0 {
		denominator = defaultDenominator
	}
	return float64(a) / float64(denominator), nil
}
