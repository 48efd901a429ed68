package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-analytics-api/internal/analytics"
	"github.com/noah-isme/sma-analytics-api/internal/dto"
	"github.com/noah-isme/sma-analytics-api/internal/models"
	appErrors "github.com/noah-isme/sma-analytics-api/pkg/errors"
)

// RecordStore describes the read-only persistence layer required by AnalyticsService.
type RecordStore interface {
	FindAttendance(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error)
	FindGrades(ctx context.Context, filter models.RecordFilter) ([]models.Grade, error)
	FindPayments(ctx context.Context, filter models.RecordFilter) ([]models.Payment, error)
	FindTeacher(ctx context.Context, id string) (*models.Teacher, error)
	FindClass(ctx context.Context, id string) (*models.Class, error)
	FindStudent(ctx context.Context, id string) (*models.Student, error)
}

// AnalyticsConfig tunes analytics computations.
type AnalyticsConfig struct {
	ComparisonPolicy string
	QueryTimeout     time.Duration
}

// AnalyticsService computes analytics on demand from the record store. Nothing is cached;
// every call recomputes from the current records.
type AnalyticsService struct {
	store   RecordStore
	metrics *MetricsService
	logger  *zap.Logger
	policy  analytics.ComparisonPolicy
	timeout time.Duration
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(store RecordStore, metrics *MetricsService, logger *zap.Logger, cfg AnalyticsConfig) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := analytics.PolicyInclusive
	if analytics.ComparisonPolicy(cfg.ComparisonPolicy) == analytics.PolicyExclusive {
		policy = analytics.PolicyExclusive
	}
	return &AnalyticsService{store: store, metrics: metrics, logger: logger, policy: policy, timeout: cfg.QueryTimeout}
}

// Attendance returns the per-date attendance series of a class, dates ascending.
func (s *AnalyticsService) Attendance(ctx context.Context, scope models.AttendanceScope) ([]dto.DailyAttendance, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.findClass(ctx, scope.ClassID, scope.SchoolID); err != nil {
		return nil, err
	}
	from, to := scope.Range.From, scope.Range.To
	records, err := observe(s, "attendance_by_class", func() ([]models.AttendanceRecord, error) {
		return s.store.FindAttendance(ctx, models.RecordFilter{SchoolID: scope.SchoolID, ClassID: scope.ClassID, From: &from, To: &to})
	})
	if err != nil {
		return nil, s.storeError("attendance analytics", err)
	}
	return assembleDailyAttendance(analytics.AttendanceByDate(analytics.FlattenAttendance(records))), nil
}

// Grades summarises the marks of a class for one exam type, optionally one subject.
func (s *AnalyticsService) Grades(ctx context.Context, scope models.GradeScope) (dto.GradeStats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.gradeStats(ctx, "grade analytics", scope.SchoolID, scope.ClassID, scope.SubjectID, scope.ExamType)
}

// ClassAverages summarises the marks of a class for one subject and exam type.
func (s *AnalyticsService) ClassAverages(ctx context.Context, scope models.ClassAverageScope) (dto.GradeStats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.gradeStats(ctx, "class averages", scope.SchoolID, scope.ClassID, scope.SubjectID, scope.ExamType)
}

func (s *AnalyticsService) gradeStats(ctx context.Context, operation, schoolID, classID, subjectID, examType string) (dto.GradeStats, error) {
	if _, err := s.findClass(ctx, classID, schoolID); err != nil {
		return dto.GradeStats{}, err
	}
	grades, err := observe(s, "grades_by_class", func() ([]models.Grade, error) {
		return s.store.FindGrades(ctx, models.RecordFilter{SchoolID: schoolID, ClassID: classID, SubjectID: subjectID, ExamType: examType})
	})
	if err != nil {
		return dto.GradeStats{}, s.storeError(operation, err)
	}
	rows := analytics.FlattenGrades(grades)
	return assembleGradeStats(analytics.Summarize(analytics.Percentages(rows))), nil
}

// TeacherPerformance summarises attendance across a teacher's classes and the marks they
// gave within the scope's window.
func (s *AnalyticsService) TeacherPerformance(ctx context.Context, scope models.TeacherScope) (*dto.TeacherPerformance, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	teacher, err := observe(s, "find_teacher", func() (*models.Teacher, error) {
		return s.store.FindTeacher(ctx, scope.TeacherID)
	})
	if err != nil {
		return nil, s.lookupError("teacher", err)
	}
	if !sameSchool(teacher.SchoolID, scope.SchoolID) {
		return nil, appErrors.Clone(appErrors.ErrEntityNotFound, "teacher not found")
	}

	from, to := scope.Range.From, scope.Range.To
	var records []models.AttendanceRecord
	if len(teacher.Classes) > 0 {
		records, err = observe(s, "attendance_by_classes", func() ([]models.AttendanceRecord, error) {
			return s.store.FindAttendance(ctx, models.RecordFilter{ClassIDs: teacher.Classes, From: &from, To: &to})
		})
		if err != nil {
			return nil, s.storeError("teacher performance", err)
		}
	}
	grades, err := observe(s, "grades_by_teacher", func() ([]models.Grade, error) {
		return s.store.FindGrades(ctx, models.RecordFilter{TeacherID: teacher.ID, From: &from, To: &to})
	})
	if err != nil {
		return nil, s.storeError("teacher performance", err)
	}

	perRecord := analytics.AttendanceByRecord(analytics.FlattenAttendance(records))
	classes := analytics.MeanAttendanceByClass(perRecord, teacher.Classes)
	given := analytics.Summarize(analytics.Percentages(analytics.FlattenGrades(grades)))
	return assembleTeacherPerformance(teacher.ID, classes, given), nil
}

// SchoolPerformance returns monthly attendance, per exam type marks and monthly fee
// collections of a school.
func (s *AnalyticsService) SchoolPerformance(ctx context.Context, scope models.SchoolScope) (*dto.SchoolPerformance, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := models.RecordFilter{SchoolID: scope.SchoolID, From: &scope.Range.From, To: &scope.Range.To}
	records, err := observe(s, "attendance_by_school", func() ([]models.AttendanceRecord, error) {
		return s.store.FindAttendance(ctx, filter)
	})
	if err != nil {
		return nil, s.storeError("school performance", err)
	}
	grades, err := observe(s, "grades_by_school", func() ([]models.Grade, error) {
		return s.store.FindGrades(ctx, filter)
	})
	if err != nil {
		return nil, s.storeError("school performance", err)
	}
	payments, err := observe(s, "payments_by_school", func() ([]models.Payment, error) {
		return s.store.FindPayments(ctx, filter)
	})
	if err != nil {
		return nil, s.storeError("school performance", err)
	}

	perRecord := analytics.AttendanceByRecord(analytics.FlattenAttendance(records))
	monthly := analytics.MonthlyMean(perRecord,
		func(r analytics.RecordAttendance) time.Time { return r.Date },
		func(r analytics.RecordAttendance) float64 { return r.Percentage },
	)
	exams := analytics.SummarizeByExamType(analytics.FlattenGrades(grades))
	fees := analytics.MonthlyTotals(payments)
	return assembleSchoolPerformance(scope.SchoolID, scope.Year, monthly, exams, fees), nil
}

// StudentVsClass compares a student's mean mark with the class average for one subject
// and exam type.
func (s *AnalyticsService) StudentVsClass(ctx context.Context, scope models.StudentComparisonScope) (*dto.StudentComparison, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	student, err := observe(s, "find_student", func() (*models.Student, error) {
		return s.store.FindStudent(ctx, scope.StudentID)
	})
	if err != nil {
		return nil, s.lookupError("student", err)
	}
	if !sameSchool(student.SchoolID, scope.SchoolID) {
		return nil, appErrors.Clone(appErrors.ErrEntityNotFound, "student not found")
	}

	grades, err := observe(s, "grades_by_class", func() ([]models.Grade, error) {
		return s.store.FindGrades(ctx, models.RecordFilter{ClassID: student.ClassID, SubjectID: scope.SubjectID, ExamType: scope.ExamType})
	})
	if err != nil {
		return nil, s.storeError("student comparison", err)
	}
	comparison := analytics.Compare(analytics.FlattenGrades(grades), student.ID, s.policy)
	return assembleComparison(student.ID, comparison), nil
}

// SystemMetrics returns the instrumentation snapshot.
func (s *AnalyticsService) SystemMetrics() dto.SystemMetrics {
	return s.metrics.Snapshot()
}

func (s *AnalyticsService) findClass(ctx context.Context, classID, schoolID string) (*models.Class, error) {
	class, err := observe(s, "find_class", func() (*models.Class, error) {
		return s.store.FindClass(ctx, classID)
	})
	if err != nil {
		return nil, s.lookupError("class", err)
	}
	if !sameSchool(class.SchoolID, schoolID) {
		return nil, appErrors.Clone(appErrors.ErrEntityNotFound, "class not found")
	}
	return class, nil
}

func (s *AnalyticsService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *AnalyticsService) lookupError(entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrEntityNotFound, fmt.Sprintf("%s not found", entity))
	}
	return s.storeError("find "+entity, err)
}

// storeError logs the cause and hides it behind a generic failure.
func (s *AnalyticsService) storeError(operation string, err error) error {
	s.logger.Error("record store query failed", zap.String("operation", operation), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message)
}

// observe times a store call. sql.ErrNoRows is an answer, not a failure.
func observe[T any](s *AnalyticsService, label string, query func() (T, error)) (T, error) {
	start := time.Now()
	result, err := query()
	failure := err
	if errors.Is(err, sql.ErrNoRows) {
		failure = nil
	}
	s.metrics.ObserveStoreQuery(label, time.Since(start), failure)
	return result, err
}

// sameSchool reports whether an entity is visible to a caller. An empty caller school is
// unrestricted.
func sameSchool(entitySchool, callerSchool string) bool {
	return callerSchool == "" || entitySchool == callerSchool
}
