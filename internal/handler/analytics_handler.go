package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-analytics-api/internal/dto"
	"github.com/noah-isme/sma-analytics-api/internal/models"
	"github.com/noah-isme/sma-analytics-api/internal/service"
	appErrors "github.com/noah-isme/sma-analytics-api/pkg/errors"
	"github.com/noah-isme/sma-analytics-api/pkg/response"
)

type analyticsService interface {
	Attendance(ctx context.Context, scope models.AttendanceScope) ([]dto.DailyAttendance, error)
	Grades(ctx context.Context, scope models.GradeScope) (dto.GradeStats, error)
	TeacherPerformance(ctx context.Context, scope models.TeacherScope) (*dto.TeacherPerformance, error)
	SchoolPerformance(ctx context.Context, scope models.SchoolScope) (*dto.SchoolPerformance, error)
	ClassAverages(ctx context.Context, scope models.ClassAverageScope) (dto.GradeStats, error)
	StudentVsClass(ctx context.Context, scope models.StudentComparisonScope) (*dto.StudentComparison, error)
	SystemMetrics() dto.SystemMetrics
}

type exportService interface {
	SchoolPerformance(ctx context.Context, scope models.SchoolScope, format string) (*service.ExportResult, error)
}

// AnalyticsHandler exposes the analytics endpoints.
type AnalyticsHandler struct {
	analytics analyticsService
	resolver  *service.ScopeResolver
	exports   exportService
}

// NewAnalyticsHandler constructs the analytics handler. A nil export service disables downloads.
func NewAnalyticsHandler(analytics analyticsService, resolver *service.ScopeResolver, exports exportService) *AnalyticsHandler {
	if resolver == nil {
		resolver = service.NewScopeResolver(nil, nil)
	}
	return &AnalyticsHandler{analytics: analytics, resolver: resolver, exports: exports}
}

// Attendance godoc
// @Summary Per-date attendance of a class
// @Tags Analytics
// @Produce json
// @Param classId query string true "Class ID"
// @Param startDate query string false "Start date (YYYY-MM-DD or RFC3339)"
// @Param endDate query string false "End date (YYYY-MM-DD or RFC3339)"
// @Param period query string false "month, quarter or year"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /analytics/attendance [get]
func (h *AnalyticsHandler) Attendance(c *gin.Context) {
	var q dto.AttendanceQuery
	if !h.bind(c, &q) {
		return
	}
	scope, err := h.resolver.Attendance(q, callerSchool(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.analytics.Attendance(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Grades godoc
// @Summary Grade statistics of a class for an exam type
// @Tags Analytics
// @Produce json
// @Param classId query string true "Class ID"
// @Param examType query string true "Exam type"
// @Param subject query string false "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /analytics/grades [get]
func (h *AnalyticsHandler) Grades(c *gin.Context) {
	var q dto.GradeQuery
	if !h.bind(c, &q) {
		return
	}
	scope, err := h.resolver.Grades(q, callerSchool(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.analytics.Grades(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// TeacherPerformance godoc
// @Summary Attendance and grading summary of a teacher
// @Tags Analytics
// @Produce json
// @Param teacherId query string true "Teacher ID"
// @Param period query string false "month, quarter or year"
// @Success 200 {object} response.Envelope
// @Router /analytics/teacher-performance [get]
func (h *AnalyticsHandler) TeacherPerformance(c *gin.Context) {
	var q dto.TeacherPerformanceQuery
	if !h.bind(c, &q) {
		return
	}
	scope, err := h.resolver.TeacherPerformance(q, callerSchool(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.analytics.TeacherPerformance(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// SchoolPerformance godoc
// @Summary Monthly attendance, grade and fee trends of a school
// @Tags Analytics
// @Produce json
// @Param schoolId query string false "School ID, defaults to the caller's school"
// @Param year query int false "Calendar year"
// @Success 200 {object} response.Envelope
// @Router /analytics/school-performance [get]
func (h *AnalyticsHandler) SchoolPerformance(c *gin.Context) {
	scope, ok := h.schoolScope(c)
	if !ok {
		return
	}
	result, err := h.analytics.SchoolPerformance(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ExportSchoolPerformance godoc
// @Summary Download the school performance report
// @Tags Analytics
// @Produce text/csv
// @Produce application/pdf
// @Param schoolId query string false "School ID, defaults to the caller's school"
// @Param year query int false "Calendar year"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /analytics/school-performance/export [get]
func (h *AnalyticsHandler) ExportSchoolPerformance(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrFeatureOff)
		return
	}
	scope, ok := h.schoolScope(c)
	if !ok {
		return
	}
	result, err := h.exports.SchoolPerformance(c.Request.Context(), scope, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}

// ClassAverages godoc
// @Summary Grade statistics of a class for a subject and exam type
// @Tags Analytics
// @Produce json
// @Param classId query string true "Class ID"
// @Param subject query string true "Subject ID"
// @Param examType query string true "Exam type"
// @Success 200 {object} response.Envelope
// @Router /analytics/class-averages [get]
func (h *AnalyticsHandler) ClassAverages(c *gin.Context) {
	var q dto.ClassAverageQuery
	if !h.bind(c, &q) {
		return
	}
	scope, err := h.resolver.ClassAverages(q, callerSchool(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.analytics.ClassAverages(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// StudentVsClass godoc
// @Summary Compare a student with their class
// @Tags Analytics
// @Produce json
// @Param studentId query string true "Student ID"
// @Param subject query string true "Subject ID"
// @Param examType query string true "Exam type"
// @Success 200 {object} response.Envelope
// @Router /analytics/student-vs-class [get]
func (h *AnalyticsHandler) StudentVsClass(c *gin.Context) {
	var q dto.StudentComparisonQuery
	if !h.bind(c, &q) {
		return
	}
	scope, err := h.resolver.StudentComparison(q, callerSchool(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.analytics.StudentVsClass(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// System godoc
// @Summary Instrumentation snapshot
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/system [get]
func (h *AnalyticsHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.analytics.SystemMetrics())
}

func (h *AnalyticsHandler) bind(c *gin.Context, q interface{}) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidParameter.Code, appErrors.ErrInvalidParameter.Status, "invalid query parameters"))
		return false
	}
	return true
}

// schoolScope defaults the school to the caller's and keeps school-scoped callers inside it.
func (h *AnalyticsHandler) schoolScope(c *gin.Context) (models.SchoolScope, bool) {
	var q dto.SchoolPerformanceQuery
	if !h.bind(c, &q) {
		return models.SchoolScope{}, false
	}
	own := callerSchool(c)
	if q.SchoolID == "" {
		q.SchoolID = own
	}
	if own != "" && q.SchoolID != own {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "school is outside the caller's scope"))
		return models.SchoolScope{}, false
	}
	scope, err := h.resolver.SchoolPerformance(q)
	if err != nil {
		response.Error(c, err)
		return models.SchoolScope{}, false
	}
	return scope, true
}

// callerSchool returns the school the caller is confined to, or "" when unrestricted.
func callerSchool(c *gin.Context) string {
	claims := claimsFromContext(c)
	if !claims.SchoolScoped() {
		return ""
	}
	return claims.SchoolID
}
