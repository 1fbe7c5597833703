// Package numeric holds the shared log-space arithmetic the scoring
// core uses to avoid underflow when multiplying many small likelihood
// ratios together, plus the non-finite detection required before a
// NumericError can be raised.
package numeric

import (
	"math"

	"github.com/lirical-go/lirical/internal/domain"
)

// Log returns math.Log(x) after checking x is a positive finite number,
// surfacing a *domain.NumericError instead of silently producing -Inf
// or NaN.
func Log(operation string, x float64) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, domain.NewNumericError(operation, "input is NaN or infinite")
	}
	if x <= 0 {
		return 0, domain.NewNumericError(operation, "log of a non-positive value")
	}
	return math.Log(x), nil
}

// Exp returns math.Exp(x) after checking the result is finite,
// surfacing a *domain.NumericError on overflow to -Inf/+Inf/NaN instead
// of letting it propagate silently into a log-space sum.
func Exp(x float64) (float64, error) {
	v := math.Exp(x)
	if err := CheckFinite("exp", v); err != nil {
		return 0, err
	}
	return v, nil
}

// CheckFinite verifies x is neither NaN nor infinite, wrapping it in a
// *domain.NumericError when it is.
func CheckFinite(operation string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return domain.NewNumericError(operation, "result is NaN or infinite")
	}
	return nil
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// SumLog sums a slice of already-log-space values. Summation in log
// space is what lets the case evaluator multiply dozens of per-term LRs
// together without underflowing a float64.
func SumLog(logs []float64) (float64, error) {
	var sum float64
	for _, l := range logs {
		if err := CheckFinite("sum_log", l); err != nil {
			return 0, err
		}
		sum += l
	}
	return sum, nil
}
