package analytics

import (
	"sort"
	"time"

	"github.com/noah-isme/sma-analytics-api/internal/models"
	"github.com/noah-isme/sma-analytics-api/pkg/stats"
)

// Summary holds the grouped statistical reduction of a set of values. The nullable fields
// are nil when Count is zero.
type Summary struct {
	Count  int
	Sum    float64
	Mean   *float64
	Median *float64
	Min    *float64
	Max    *float64
}

// Summarize reduces values to a Summary.
func Summarize(values []float64) Summary {
	return Summary{
		Count:  len(values),
		Sum:    stats.Sum(values),
		Mean:   stats.Mean(values),
		Median: stats.Median(values),
		Min:    stats.Min(values),
		Max:    stats.Max(values),
	}
}

// ExamTypeSummary is the Summary of all marks of one exam type.
type ExamTypeSummary struct {
	ExamType string
	Summary
}

// SummarizeByExamType summarises marks per exam type, exam types ascending.
func SummarizeByExamType(rows []GradeRow) []ExamTypeSummary {
	groups := GroupByString(rows, func(r GradeRow) string { return r.ExamType })
	out := make([]ExamTypeSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, ExamTypeSummary{ExamType: g.Key, Summary: Summarize(Percentages(g.Rows))})
	}
	return out
}

// Tally counts entries and how many of them were present. Late, excused and absent
// entries are all counted as not present.
type Tally struct {
	Present int
	Total   int
}

// Percentage returns Present/Total*100, or 0 for an empty tally.
func (t Tally) Percentage() float64 {
	return stats.Percentage(float64(t.Present), float64(t.Total))
}

// TallyAttendance counts the rows of one group.
func TallyAttendance(rows []AttendanceRow) Tally {
	var t Tally
	for _, row := range rows {
		t.Total++
		if row.Status == models.AttendanceStatusPresent {
			t.Present++
		}
	}
	return t
}

// DailyAttendance is the attendance of one calendar day.
type DailyAttendance struct {
	Date       time.Time
	Tally      Tally
	Percentage float64
}

// AttendanceByDate groups rows by UTC calendar day, days ascending.
func AttendanceByDate(rows []AttendanceRow) []DailyAttendance {
	groups := GroupBy(rows, func(r AttendanceRow) time.Time { return calendarDay(r.Date) })
	SortGroups(groups, func(a, b time.Time) bool { return a.Before(b) })

	out := make([]DailyAttendance, 0, len(groups))
	for _, g := range groups {
		tally := TallyAttendance(g.Rows)
		out = append(out, DailyAttendance{Date: g.Key, Tally: tally, Percentage: tally.Percentage()})
	}
	return out
}

// RecordAttendance is the attendance of one register.
type RecordAttendance struct {
	RecordID   string
	ClassID    string
	Date       time.Time
	Tally      Tally
	Percentage float64
}

// AttendanceByRecord reduces rows to one percentage per attendance record, ordered by
// date, then class, then record id, whatever order the store returned them in.
func AttendanceByRecord(rows []AttendanceRow) []RecordAttendance {
	groups := GroupBy(rows, func(r AttendanceRow) string { return r.RecordID })
	out := make([]RecordAttendance, 0, len(groups))
	for _, g := range groups {
		tally := TallyAttendance(g.Rows)
		first := g.Rows[0]
		out = append(out, RecordAttendance{
			RecordID:   g.Key,
			ClassID:    first.ClassID,
			Date:       first.Date,
			Tally:      tally,
			Percentage: tally.Percentage(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.ClassID != b.ClassID {
			return a.ClassID < b.ClassID
		}
		return a.RecordID < b.RecordID
	})
	return out
}

// ClassAttendance is the mean per-record attendance of one class. Mean is nil when the
// class has no records.
type ClassAttendance struct {
	ClassID string
	Mean    *float64
}

// MeanAttendanceByClass averages per-record percentages for each of classIDs. Every class
// is listed once, sorted, whether or not it has records.
func MeanAttendanceByClass(records []RecordAttendance, classIDs []string) []ClassAttendance {
	byClass := make(map[string][]float64)
	for _, r := range records {
		byClass[r.ClassID] = append(byClass[r.ClassID], r.Percentage)
	}

	ids := GroupByString(classIDs, func(id string) string { return id })
	out := make([]ClassAttendance, 0, len(ids))
	for _, id := range ids {
		out = append(out, ClassAttendance{ClassID: id.Key, Mean: stats.Mean(byClass[id.Key])})
	}
	return out
}

func calendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
