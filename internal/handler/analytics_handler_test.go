package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-analytics-api/internal/dto"
	"github.com/noah-isme/sma-analytics-api/internal/middleware"
	"github.com/noah-isme/sma-analytics-api/internal/models"
	"github.com/noah-isme/sma-analytics-api/internal/service"
	appErrors "github.com/noah-isme/sma-analytics-api/pkg/errors"
	"github.com/noah-isme/sma-analytics-api/pkg/stats"
)

const (
	testSchool  = "6f1c2a57-0d3e-4a55-9a43-3f7a3c1e8a01"
	otherSchool = "6f1c2a57-0d3e-4a55-9a43-3f7a3c1e8a02"
	testClass   = "2b0a9c1d-5e1f-4f0a-8a1b-0c2d3e4f5a01"
	testStudent = "4e5f6a7b-8c9d-4e0f-9a1b-2c3d4e5f6a01"
	testSubject = "7a6b5c4d-3e2f-4a1b-8c9d-0e1f2a3b4c01"
)

type fakeAnalyticsSrv struct {
	attendance   []dto.DailyAttendance
	grades       dto.GradeStats
	comparison   *dto.StudentComparison
	school       *dto.SchoolPerformance
	err          error
	attendanceIn models.AttendanceScope
	gradesIn     models.GradeScope
	classAvgIn   models.ClassAverageScope
	schoolIn     models.SchoolScope
	comparisonIn models.StudentComparisonScope
	calls        int
}

func (f *fakeAnalyticsSrv) Attendance(_ context.Context, scope models.AttendanceScope) ([]dto.DailyAttendance, error) {
	f.calls++
	f.attendanceIn = scope
	return f.attendance, f.err
}

func (f *fakeAnalyticsSrv) Grades(_ context.Context, scope models.GradeScope) (dto.GradeStats, error) {
	f.calls++
	f.gradesIn = scope
	return f.grades, f.err
}

func (f *fakeAnalyticsSrv) TeacherPerformance(_ context.Context, scope models.TeacherScope) (*dto.TeacherPerformance, error) {
	f.calls++
	return &dto.TeacherPerformance{TeacherID: scope.TeacherID, AttendanceByClass: []dto.ClassAttendance{}}, f.err
}

func (f *fakeAnalyticsSrv) SchoolPerformance(_ context.Context, scope models.SchoolScope) (*dto.SchoolPerformance, error) {
	f.calls++
	f.schoolIn = scope
	return f.school, f.err
}

func (f *fakeAnalyticsSrv) ClassAverages(_ context.Context, scope models.ClassAverageScope) (dto.GradeStats, error) {
	f.calls++
	f.classAvgIn = scope
	return f.grades, f.err
}

func (f *fakeAnalyticsSrv) StudentVsClass(_ context.Context, scope models.StudentComparisonScope) (*dto.StudentComparison, error) {
	f.calls++
	f.comparisonIn = scope
	return f.comparison, f.err
}

func (f *fakeAnalyticsSrv) SystemMetrics() dto.SystemMetrics {
	return dto.SystemMetrics{RequestsTotal: 7}
}

type fakeExportSrv struct {
	format string
}

func (f *fakeExportSrv) SchoolPerformance(_ context.Context, scope models.SchoolScope, format string) (*service.ExportResult, error) {
	f.format = format
	return &service.ExportResult{Filename: "school-performance-" + scope.SchoolID + ".csv", ContentType: "text/csv", Payload: []byte("a,b\n")}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

var fixedClock = func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC) }

func newTestHandler(srv *fakeAnalyticsSrv, exports exportService) *AnalyticsHandler {
	return NewAnalyticsHandler(srv, service.NewScopeResolver(nil, fixedClock), exports)
}

func performRequest(target string, claims *models.JWTClaims, handle gin.HandlerFunc) (*httptest.ResponseRecorder, envelope) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	handle(c)

	var body envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func adminOf(school string) *models.JWTClaims {
	return &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin, SchoolID: school}
}

func TestAnalyticsHandlerAttendanceSuccess(t *testing.T) {
	srv := &fakeAnalyticsSrv{attendance: []dto.DailyAttendance{{Date: "2024-05-06", TotalStudents: 3, PresentCount: 2, AttendancePercentage: 67}}}
	handler := newTestHandler(srv, nil)

	rec, body := performRequest("/analytics/attendance?classId="+testClass+"&startDate=2024-05-01&endDate=2024-05-31", adminOf(testSchool), handler.Attendance)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.JSONEq(t, `[{"date":"2024-05-06","totalStudents":3,"presentCount":2,"attendancePercentage":67}]`, string(body.Data))
	assert.Equal(t, testSchool, srv.attendanceIn.SchoolID)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestAnalyticsHandlerValidationErrors(t *testing.T) {
	handler := newTestHandler(&fakeAnalyticsSrv{}, nil)

	tests := []struct {
		name   string
		target string
		handle func(*AnalyticsHandler) gin.HandlerFunc
		code   string
	}{
		{"missing class", "/analytics/attendance", func(h *AnalyticsHandler) gin.HandlerFunc { return h.Attendance }, "MISSING_PARAMETER"},
		{"bad class id", "/analytics/grades?classId=12&examType=final", func(h *AnalyticsHandler) gin.HandlerFunc { return h.Grades }, "INVALID_IDENTIFIER"},
		{"missing subject", "/analytics/class-averages?classId=" + testClass + "&examType=final", func(h *AnalyticsHandler) gin.HandlerFunc { return h.ClassAverages }, "MISSING_PARAMETER"},
		{"bad period", "/analytics/teacher-performance?teacherId=" + testClass + "&period=decade", func(h *AnalyticsHandler) gin.HandlerFunc { return h.TeacherPerformance }, "INVALID_PARAMETER"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := performRequest(tc.target, adminOf(testSchool), tc.handle(handler))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAnalyticsHandlerEmptyClassAverages(t *testing.T) {
	srv := &fakeAnalyticsSrv{}
	handler := newTestHandler(srv, nil)

	rec, body := performRequest("/analytics/class-averages?classId="+testClass+"&subject="+testSubject+"&examType=final", adminOf(testSchool), handler.ClassAverages)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.JSONEq(t, `{}`, string(body.Data))
	assert.Equal(t, testSubject, srv.classAvgIn.SubjectID)
}

func TestAnalyticsHandlerGradesPassesOptionalSubject(t *testing.T) {
	srv := &fakeAnalyticsSrv{grades: dto.GradeStats{Average: stats.Float(75), Median: stats.Float(75), Highest: stats.Float(90), Lowest: stats.Float(60), Count: 4}}
	handler := newTestHandler(srv, nil)

	rec, body := performRequest("/analytics/grades?classId="+testClass+"&examType=final", nil, handler.Grades)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"average":75,"median":75,"highest":90,"lowest":60,"count":4}`, string(body.Data))
	assert.Empty(t, srv.gradesIn.SubjectID)
	assert.Empty(t, srv.gradesIn.SchoolID)
}

func TestAnalyticsHandlerStudentVsClass(t *testing.T) {
	srv := &fakeAnalyticsSrv{comparison: &dto.StudentComparison{StudentID: testStudent, ClassAverage: stats.Float(60), StudentsCounted: 3}}
	handler := newTestHandler(srv, nil)

	rec, body := performRequest("/analytics/student-vs-class?studentId="+testStudent+"&subject="+testSubject+"&examType=final", adminOf(testSchool), handler.StudentVsClass)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"studentId":"`+testStudent+`","studentScore":null,"classAverage":60,"studentsCounted":3}`, string(body.Data))
	assert.Equal(t, "final", srv.comparisonIn.ExamType)
}

func TestAnalyticsHandlerMapsServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{appErrors.Clone(appErrors.ErrEntityNotFound, "class not found"), http.StatusNotFound, "ENTITY_NOT_FOUND"},
		{appErrors.Wrap(errors.New("dial tcp: refused"), appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message), http.StatusInternalServerError, "STORE_UNAVAILABLE"},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			handler := newTestHandler(&fakeAnalyticsSrv{err: tc.err}, nil)
			rec, body := performRequest("/analytics/attendance?classId="+testClass, nil, handler.Attendance)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, body.Code)
			assert.NotContains(t, rec.Body.String(), "dial tcp")
		})
	}
}

func TestAnalyticsHandlerSchoolPerformanceScoping(t *testing.T) {
	srv := &fakeAnalyticsSrv{school: &dto.SchoolPerformance{SchoolID: testSchool}}
	handler := newTestHandler(srv, nil)

	rec, _ := performRequest("/analytics/school-performance?year=2024", adminOf(testSchool), handler.SchoolPerformance)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testSchool, srv.schoolIn.SchoolID)
	require.NotNil(t, srv.schoolIn.Year)
	assert.Equal(t, 2024, *srv.schoolIn.Year)

	rec, body := performRequest("/analytics/school-performance?schoolId="+otherSchool, adminOf(testSchool), handler.SchoolPerformance)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", body.Code)

	superAdmin := &models.JWTClaims{UserID: "root", Role: models.RoleSuperAdmin}
	rec, _ = performRequest("/analytics/school-performance?schoolId="+otherSchool, superAdmin, handler.SchoolPerformance)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, otherSchool, srv.schoolIn.SchoolID)

	rec, body = performRequest("/analytics/school-performance", superAdmin, handler.SchoolPerformance)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_PARAMETER", body.Code)
}

func TestAnalyticsHandlerExport(t *testing.T) {
	handler := newTestHandler(&fakeAnalyticsSrv{}, nil)
	rec, body := performRequest("/analytics/school-performance/export", adminOf(testSchool), handler.ExportSchoolPerformance)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "FEATURE_DISABLED", body.Code)

	exports := &fakeExportSrv{}
	handler = newTestHandler(&fakeAnalyticsSrv{}, exports)
	rec, _ = performRequest("/analytics/school-performance/export?format=csv", adminOf(testSchool), handler.ExportSchoolPerformance)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", exports.format)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "school-performance-"+testSchool+".csv")
	assert.Equal(t, "a,b\n", rec.Body.String())
}

func TestAnalyticsHandlerSystem(t *testing.T) {
	handler := newTestHandler(&fakeAnalyticsSrv{}, nil)
	rec, body := performRequest("/analytics/system", nil, handler.System)
	assert.Equal(t, http.StatusOK, rec.Code)

	var snapshot dto.SystemMetrics
	require.NoError(t, json.Unmarshal(body.Data, &snapshot))
	assert.Equal(t, uint64(7), snapshot.RequestsTotal)
}

type stubPinger struct{ err error }

func (s stubPinger) PingContext(context.Context) error { return s.err }

func TestMetricsHandlerReady(t *testing.T) {
	handler := NewMetricsHandler(service.NewMetricsService(), stubPinger{})
	rec, _ := performRequest("/ready", nil, handler.Ready)
	assert.Equal(t, http.StatusOK, rec.Code)

	handler = NewMetricsHandler(service.NewMetricsService(), stubPinger{err: errors.New("down")})
	rec, _ = performRequest("/ready", nil, handler.Ready)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
