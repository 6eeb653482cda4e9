package errors

import (
	"math"
)

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckNumericalStability returns a DivergenceError if values contain NaN or Inf.
// At most ten offending values are kept on the error.
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	var bad []float64
	for _, v := range values {
		if !IsFinite(v) {
			bad = append(bad, v)
			if len(bad) >= 10 {
				break
			}
		}
	}
	if len(bad) > 0 {
		return NewDivergenceError(operation, bad, iteration)
	}
	return nil
}

// CheckScalar checks a single value.
func CheckScalar(operation string, value float64, iteration int) error {
	if !IsFinite(value) {
		return NewDivergenceError(operation, []float64{value}, iteration)
	}
	return nil
}

// SafeDivide returns 0 when the denominator is zero or close to it.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}

// ClipValue clips a value to the range [min, max].
func ClipValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
