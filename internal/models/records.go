package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceStatus is the per-student status recorded on an attendance sheet.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one class register for one calendar date.
type AttendanceRecord struct {
	ID       string            `db:"id" json:"id"`
	SchoolID string            `db:"school_id" json:"schoolId"`
	ClassID  string            `db:"class_id" json:"classId"`
	Date     time.Time         `db:"date" json:"date"`
	Entries  []AttendanceEntry `json:"entries"`
}

// AttendanceEntry is a single student's status within an AttendanceRecord.
type AttendanceEntry struct {
	StudentID string           `db:"student_id" json:"studentId"`
	Status    AttendanceStatus `db:"status" json:"status"`
}

// Grade is one grading event for a class, subject and teacher.
type Grade struct {
	ID        string       `db:"id" json:"id"`
	SchoolID  string       `db:"school_id" json:"schoolId"`
	ClassID   string       `db:"class_id" json:"classId"`
	SubjectID string       `db:"subject_id" json:"subjectId"`
	TeacherID string       `db:"teacher_id" json:"teacherId"`
	ExamType  string       `db:"exam_type" json:"examType"`
	GradedAt  time.Time    `db:"graded_at" json:"gradedAt"`
	Entries   []GradeEntry `json:"entries"`
}

// GradeEntry holds one student's mark as a percentage in [0,100].
type GradeEntry struct {
	StudentID  string  `db:"student_id" json:"studentId"`
	Percentage float64 `db:"percentage" json:"percentage"`
}

// Teacher carries the classes a teacher is assigned to.
type Teacher struct {
	ID       string   `db:"id" json:"id"`
	SchoolID string   `db:"school_id" json:"schoolId"`
	Classes  []string `json:"classes"`
}

// Class is a school class.
type Class struct {
	ID       string `db:"id" json:"id"`
	SchoolID string `db:"school_id" json:"schoolId"`
}

// Student links a student to their class and school.
type Student struct {
	ID       string `db:"id" json:"id"`
	ClassID  string `db:"class_id" json:"classId"`
	SchoolID string `db:"school_id" json:"schoolId"`
}

// Payment is a fee payment made for a student.
type Payment struct {
	ID             string          `db:"id" json:"id"`
	StudentID      string          `db:"student_id" json:"studentId"`
	FeeStructureID string          `db:"fee_structure_id" json:"feeStructureId"`
	AmountPaid     decimal.Decimal `db:"amount_paid" json:"amountPaid"`
	PaymentDate    time.Time       `db:"payment_date" json:"paymentDate"`
}

// RecordFilter narrows record collections by foreign keys and a date window.
// Empty fields are not applied; From/To are inclusive when set.
type RecordFilter struct {
	SchoolID  string
	ClassID   string
	ClassIDs  []string
	StudentID string
	TeacherID string
	SubjectID string
	ExamType  string
	From      *time.Time
	To        *time.Time
}
