package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/sma-analytics-api/internal/models"
	"github.com/noah-isme/sma-analytics-api/pkg/stats"
)

// Bucket is a calendar month in UTC.
type Bucket struct {
	Year  int
	Month time.Month
}

// BucketOf returns the month t falls in, evaluated in UTC.
func BucketOf(t time.Time) Bucket {
	t = t.UTC()
	return Bucket{Year: t.Year(), Month: t.Month()}
}

// Before reports whether b is an earlier month than other.
func (b Bucket) Before(other Bucket) bool {
	if b.Year != other.Year {
		return b.Year < other.Year
	}
	return b.Month < other.Month
}

// BucketMonthly groups rows by month, months ascending. Months without rows are absent.
func BucketMonthly[T any](rows []T, date func(T) time.Time) []Group[Bucket, T] {
	groups := GroupBy(rows, func(row T) Bucket { return BucketOf(date(row)) })
	SortGroups(groups, func(a, b Bucket) bool { return a.Before(b) })
	return groups
}

// MonthlyValue is an unrounded per-month aggregate.
type MonthlyValue struct {
	Bucket
	Value float64
}

// MonthlyMean averages value per month.
func MonthlyMean[T any](rows []T, date func(T) time.Time, value func(T) float64) []MonthlyValue {
	groups := BucketMonthly(rows, date)
	out := make([]MonthlyValue, 0, len(groups))
	for _, g := range groups {
		values := make([]float64, 0, len(g.Rows))
		for _, row := range g.Rows {
			values = append(values, value(row))
		}
		// groups are never empty, so Mean is never nil here
		out = append(out, MonthlyValue{Bucket: g.Key, Value: *stats.Mean(values)})
	}
	return out
}

// MonthlyAmount is the exact total of payments received in one month.
type MonthlyAmount struct {
	Bucket
	Total decimal.Decimal
}

// MonthlyTotals sums payment amounts per month of payment date.
func MonthlyTotals(payments []models.Payment) []MonthlyAmount {
	groups := BucketMonthly(payments, func(p models.Payment) time.Time { return p.PaymentDate })
	out := make([]MonthlyAmount, 0, len(groups))
	for _, g := range groups {
		total := decimal.Zero
		for _, p := range g.Rows {
			total = total.Add(p.AmountPaid)
		}
		out = append(out, MonthlyAmount{Bucket: g.Key, Total: total})
	}
	return out
}
