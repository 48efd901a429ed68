package dto

import "time"

// AttendanceQuery carries raw attendance analytics parameters.
type AttendanceQuery struct {
	ClassID   string `form:"classId" validate:"required,uuid"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Period    string `form:"period" validate:"omitempty,oneof=month quarter year"`
}

// GradeQuery carries raw grade analytics parameters.
type GradeQuery struct {
	ClassID  string `form:"classId" validate:"required,uuid"`
	ExamType string `form:"examType" validate:"required,max=64"`
	Subject  string `form:"subject" validate:"omitempty,uuid"`
}

// TeacherPerformanceQuery carries raw teacher performance parameters.
type TeacherPerformanceQuery struct {
	TeacherID string `form:"teacherId" validate:"required,uuid"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Period    string `form:"period" validate:"omitempty,oneof=month quarter year"`
}

// SchoolPerformanceQuery carries raw school performance parameters.
type SchoolPerformanceQuery struct {
	SchoolID string `form:"schoolId" validate:"required,uuid"`
	Year     string `form:"year" validate:"omitempty,numeric,len=4"`
}

// ClassAverageQuery carries raw class average parameters.
type ClassAverageQuery struct {
	ClassID  string `form:"classId" validate:"required,uuid"`
	Subject  string `form:"subject" validate:"required,uuid"`
	ExamType string `form:"examType" validate:"required,max=64"`
}

// StudentComparisonQuery carries raw student-vs-class parameters.
type StudentComparisonQuery struct {
	StudentID string `form:"studentId" validate:"required,uuid"`
	Subject   string `form:"subject" validate:"required,uuid"`
	ExamType  string `form:"examType" validate:"required,max=64"`
}

// DailyAttendance is one point of the per-date attendance series.
type DailyAttendance struct {
	Date                 string  `json:"date"`
	TotalStudents        int     `json:"totalStudents"`
	PresentCount         int     `json:"presentCount"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

// GradeStats summarises marks. All fields are omitted when there is no data, which
// serialises as an empty object.
type GradeStats struct {
	Average *float64 `json:"average,omitempty"`
	Median  *float64 `json:"median,omitempty"`
	Highest *float64 `json:"highest,omitempty"`
	Lowest  *float64 `json:"lowest,omitempty"`
	Count   int      `json:"count,omitempty"`
}

// TeacherPerformance summarises a teacher's classes and grading.
type TeacherPerformance struct {
	TeacherID         string            `json:"teacherId"`
	ClassCount        int               `json:"classCount"`
	AttendanceByClass []ClassAttendance `json:"attendanceByClass"`
	AverageGradeGiven *float64          `json:"averageGradeGiven"`
	TotalGradesGiven  int               `json:"totalGradesGiven"`
}

// ClassAttendance is the mean attendance of one class.
type ClassAttendance struct {
	ClassID          string   `json:"classId"`
	AvgAttendancePct *float64 `json:"avgAttendancePct"`
}

// SchoolPerformance bundles school-wide trends.
type SchoolPerformance struct {
	SchoolID          string              `json:"schoolId"`
	Year              *int                `json:"year,omitempty"`
	AttendanceMonthly []MonthlyAttendance `json:"attendanceMonthly"`
	GradeStats        []ExamTypeStats     `json:"gradeStats"`
	FeeCollections    []MonthlyCollection `json:"feeCollections"`
}

// MonthlyAttendance is the mean attendance of one month.
type MonthlyAttendance struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	AvgAttendancePct float64 `json:"avgAttendancePct"`
}

// ExamTypeStats is the average mark of one exam type.
type ExamTypeStats struct {
	ExamType     string  `json:"examType"`
	AverageMarks float64 `json:"averageMarks"`
	Count        int     `json:"count"`
}

// MonthlyCollection is the fee total collected in one month.
type MonthlyCollection struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	TotalCollected float64 `json:"totalCollected"`
}

// StudentComparison compares a student with their class.
type StudentComparison struct {
	StudentID       string   `json:"studentId"`
	StudentScore    *float64 `json:"studentScore"`
	ClassAverage    *float64 `json:"classAverage"`
	StudentsCounted int      `json:"studentsCounted"`
}

// SystemMetrics is an instrumentation snapshot of the running service.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	StoreQueryCount          uint64    `json:"storeQueryCount"`
	AverageStoreQueryMs      float64   `json:"averageStoreQueryMs"`
	StoreQueryFailures       uint64    `json:"storeQueryFailures"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
