package models

import "time"

// Period keywords accepted by analytics queries.
const (
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

// DateRange is an inclusive time window.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// AttendanceScope drives per-date attendance analytics.
type AttendanceScope struct {
	SchoolID string
	ClassID  string
	Range    DateRange
}

// GradeScope drives grade analytics for a class and exam type, optionally per subject.
type GradeScope struct {
	SchoolID  string
	ClassID   string
	ExamType  string
	SubjectID string
}

// TeacherScope drives teacher performance analytics.
type TeacherScope struct {
	SchoolID  string
	TeacherID string
	Range     DateRange
}

// SchoolScope drives school-wide performance analytics.
type SchoolScope struct {
	SchoolID string
	Year     *int
	Range    DateRange
}

// ClassAverageScope drives class average analytics.
type ClassAverageScope struct {
	SchoolID  string
	ClassID   string
	SubjectID string
	ExamType  string
}

// StudentComparisonScope drives student-vs-class analytics.
type StudentComparisonScope struct {
	SchoolID  string
	StudentID string
	SubjectID string
	ExamType  string
}
