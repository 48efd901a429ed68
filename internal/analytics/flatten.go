package analytics

import (
	"time"

	"github.com/noah-isme/sma-analytics-api/internal/models"
)

// AttendanceRow is one student entry of an attendance record, carrying its parent's keys.
type AttendanceRow struct {
	RecordID  string
	SchoolID  string
	ClassID   string
	Date      time.Time
	StudentID string
	Status    models.AttendanceStatus
}

// GradeRow is one student entry of a grading event, carrying its parent's keys.
type GradeRow struct {
	GradeID    string
	ClassID    string
	SubjectID  string
	TeacherID  string
	ExamType   string
	GradedAt   time.Time
	StudentID  string
	Percentage float64
}

// FlattenAttendance fans records out to one row per entry. Records without entries
// produce no rows.
func FlattenAttendance(records []models.AttendanceRecord) []AttendanceRow {
	rows := make([]AttendanceRow, 0, len(records))
	for _, record := range records {
		for _, entry := range record.Entries {
			rows = append(rows, AttendanceRow{
				RecordID:  record.ID,
				SchoolID:  record.SchoolID,
				ClassID:   record.ClassID,
				Date:      record.Date,
				StudentID: entry.StudentID,
				Status:    entry.Status,
			})
		}
	}
	return rows
}

// FlattenGrades fans grading events out to one row per entry.
func FlattenGrades(grades []models.Grade) []GradeRow {
	rows := make([]GradeRow, 0, len(grades))
	for _, grade := range grades {
		for _, entry := range grade.Entries {
			rows = append(rows, GradeRow{
				GradeID:    grade.ID,
				ClassID:    grade.ClassID,
				SubjectID:  grade.SubjectID,
				TeacherID:  grade.TeacherID,
				ExamType:   grade.ExamType,
				GradedAt:   grade.GradedAt,
				StudentID:  entry.StudentID,
				Percentage: entry.Percentage,
			})
		}
	}
	return rows
}

// Percentages extracts the marks of grade rows in row order.
func Percentages(rows []GradeRow) []float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Percentage)
	}
	return values
}
