package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-analytics-api/internal/dto"
	"github.com/noah-isme/sma-analytics-api/internal/models"
	appErrors "github.com/noah-isme/sma-analytics-api/pkg/errors"
)

const dateLayout = "2006-01-02"

var epoch = time.Unix(0, 0).UTC()

// ScopeResolver turns raw query parameters into typed analytics scopes.
type ScopeResolver struct {
	validator *validator.Validate
	now       func() time.Time
}

// NewScopeResolver constructs a resolver. A nil clock defaults to time.Now.
func NewScopeResolver(validate *validator.Validate, now func() time.Time) *ScopeResolver {
	if validate == nil {
		validate = validator.New()
	}
	if now == nil {
		now = time.Now
	}
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &ScopeResolver{validator: validate, now: now}
}

// Attendance resolves the scope of per-date attendance analytics.
func (r *ScopeResolver) Attendance(q dto.AttendanceQuery, schoolID string) (models.AttendanceScope, error) {
	if err := r.validate(q); err != nil {
		return models.AttendanceScope{}, err
	}
	window, err := r.dateRange(q.StartDate, q.EndDate, q.Period)
	if err != nil {
		return models.AttendanceScope{}, err
	}
	return models.AttendanceScope{SchoolID: schoolID, ClassID: q.ClassID, Range: window}, nil
}

// Grades resolves the scope of grade analytics.
func (r *ScopeResolver) Grades(q dto.GradeQuery, schoolID string) (models.GradeScope, error) {
	if err := r.validate(q); err != nil {
		return models.GradeScope{}, err
	}
	return models.GradeScope{
		SchoolID:  schoolID,
		ClassID:   q.ClassID,
		ExamType:  strings.TrimSpace(q.ExamType),
		SubjectID: q.Subject,
	}, nil
}

// TeacherPerformance resolves the scope of teacher performance analytics.
func (r *ScopeResolver) TeacherPerformance(q dto.TeacherPerformanceQuery, schoolID string) (models.TeacherScope, error) {
	if err := r.validate(q); err != nil {
		return models.TeacherScope{}, err
	}
	window, err := r.dateRange(q.StartDate, q.EndDate, q.Period)
	if err != nil {
		return models.TeacherScope{}, err
	}
	return models.TeacherScope{SchoolID: schoolID, TeacherID: q.TeacherID, Range: window}, nil
}

// SchoolPerformance resolves the scope of school-wide analytics. Without a year the whole
// history up to now is covered.
func (r *ScopeResolver) SchoolPerformance(q dto.SchoolPerformanceQuery) (models.SchoolScope, error) {
	if err := r.validate(q); err != nil {
		return models.SchoolScope{}, err
	}
	scope := models.SchoolScope{SchoolID: q.SchoolID, Range: models.DateRange{From: epoch, To: r.now().UTC()}}
	if q.Year == "" {
		return scope, nil
	}
	year, err := strconv.Atoi(q.Year)
	if err != nil || year < 1 {
		return models.SchoolScope{}, invalidParameter("year", "must be a four digit year")
	}
	scope.Year = &year
	scope.Range = models.DateRange{
		From: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(year, time.December, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC),
	}
	return scope, nil
}

// ClassAverages resolves the scope of class average analytics.
func (r *ScopeResolver) ClassAverages(q dto.ClassAverageQuery, schoolID string) (models.ClassAverageScope, error) {
	if err := r.validate(q); err != nil {
		return models.ClassAverageScope{}, err
	}
	return models.ClassAverageScope{
		SchoolID:  schoolID,
		ClassID:   q.ClassID,
		SubjectID: q.Subject,
		ExamType:  strings.TrimSpace(q.ExamType),
	}, nil
}

// StudentComparison resolves the scope of student-vs-class analytics.
func (r *ScopeResolver) StudentComparison(q dto.StudentComparisonQuery, schoolID string) (models.StudentComparisonScope, error) {
	if err := r.validate(q); err != nil {
		return models.StudentComparisonScope{}, err
	}
	return models.StudentComparisonScope{
		SchoolID:  schoolID,
		StudentID: q.StudentID,
		SubjectID: q.Subject,
		ExamType:  strings.TrimSpace(q.ExamType),
	}, nil
}

// validate maps the first failing rule onto the analytics error taxonomy.
func (r *ScopeResolver) validate(q interface{}) error {
	err := r.validator.Struct(q)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrInvalidParameter.Code, appErrors.ErrInvalidParameter.Status, "invalid parameters")
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return appErrors.Clone(appErrors.ErrMissingParameter, fmt.Sprintf("%s is required", fe.Field()))
	case "uuid":
		return appErrors.Clone(appErrors.ErrInvalidIdentifier, fmt.Sprintf("%s must be a valid UUID", fe.Field()))
	case "oneof":
		return invalidParameter(fe.Field(), "must be one of "+strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return invalidParameter(fe.Field(), "is malformed")
	}
}

// dateRange resolves explicit bounds first, then a period keyword, then all history.
func (r *ScopeResolver) dateRange(start, end, period string) (models.DateRange, error) {
	now := r.now().UTC()
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)

	if start != "" || end != "" {
		window := models.DateRange{From: epoch, To: now}
		if start != "" {
			from, err := parseDate(start, false)
			if err != nil {
				return models.DateRange{}, invalidParameter("startDate", "must be YYYY-MM-DD or RFC3339")
			}
			window.From = from
		}
		if end != "" {
			to, err := parseDate(end, true)
			if err != nil {
				return models.DateRange{}, invalidParameter("endDate", "must be YYYY-MM-DD or RFC3339")
			}
			window.To = to
		}
		if window.From.After(window.To) {
			return models.DateRange{}, invalidParameter("startDate", "must not be after endDate")
		}
		return window, nil
	}

	switch strings.ToLower(strings.TrimSpace(period)) {
	case "":
		return models.DateRange{From: epoch, To: now}, nil
	case models.PeriodMonth:
		return models.DateRange{From: now.AddDate(0, -1, 0), To: now}, nil
	case models.PeriodQuarter:
		return models.DateRange{From: now.AddDate(0, -3, 0), To: now}, nil
	case models.PeriodYear:
		return models.DateRange{From: now.AddDate(0, -12, 0), To: now}, nil
	default:
		return models.DateRange{}, invalidParameter("period", "must be one of month, quarter, year")
	}
}

// parseDate accepts a calendar date or an RFC3339 timestamp. A calendar date used as an
// upper bound covers the whole day.
func parseDate(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func invalidParameter(field, reason string) error {
	return appErrors.Clone(appErrors.ErrInvalidParameter, fmt.Sprintf("%s %s", field, reason))
}
