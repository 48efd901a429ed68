// Package stats holds the pure numeric helpers behind every analytics metric.
//
// Functions that can be asked about an empty sequence return *float64 and use nil
// for "no data"; none of them panic or divide by zero.
package stats

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Precision used when presenting metrics.
const (
	PercentPrecision = 0
	AveragePrecision = 2
)

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Sum adds all values. An empty sequence sums to zero.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean or nil for an empty sequence.
func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	return Float(Sum(values) / float64(len(values)))
}

// Median returns the middle value of the sorted sequence, the mean of the two middle
// values for even lengths, or nil when empty. The input slice is not modified.
func Median(values []float64) *float64 {
	n := len(values)
	if n == 0 {
		return nil
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 1 {
		return Float(sorted[mid])
	}
	return Float((sorted[mid-1] + sorted[mid]) / 2)
}

// Min returns the smallest value or nil when empty.
func Min(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return Float(m)
}

// Max returns the largest value or nil when empty.
func Max(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return Float(m)
}

// Percentage returns numerator/denominator*100, and 0 when the denominator is 0.
func Percentage(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}

// Round rounds half away from zero at the given number of decimal places. The value is
// rounded on its shortest decimal representation, so 2.675 rounds to 2.68.
func Round(value float64, precision int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(precision).InexactFloat64()
}

// RoundPtr rounds a nullable value, keeping nil as nil.
func RoundPtr(value *float64, precision int32) *float64 {
	if value == nil {
		return nil
	}
	return Float(Round(*value, precision))
}
