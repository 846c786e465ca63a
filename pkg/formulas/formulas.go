// Package formulas provides pure numeric helpers shared by the valuation code.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sum adds a slice of float64 values. Returns 0 for an empty slice.
func Sum(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Sum(data)
}

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// PercentOf returns part as a percentage of whole.
// Returns 0 when whole is 0 so callers never see a non-finite value.
func PercentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// ChangePct returns the percentage change from base to current.
// Returns 0 when base is 0.
func ChangePct(base, current float64) float64 {
	if base == 0 {
		return 0
	}
	return (current - base) / base * 100
}

// Round rounds a float64 to n decimal places
func Round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
