package main

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-analytics-api/internal/handler"
	"github.com/noah-isme/sma-analytics-api/internal/models"
	"github.com/noah-isme/sma-analytics-api/internal/repository"
	"github.com/noah-isme/sma-analytics-api/internal/service"
)

type staticTokens map[string]*models.JWTClaims

func (s staticTokens) ValidateToken(token string) (*models.JWTClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, sql.ErrNoRows
}

const (
	routeTeacher = "9d8c7b6a-1234-4cde-8f01-23456789ab01"
	routeStudent = "4e5f6a7b-8c9d-4e0f-9a1b-2c3d4e5f6a01"
	routeSubject = "7a6b5c4d-3e2f-4a1b-8c9d-0e1f2a3b4c01"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("FROM students").WillReturnRows(sqlmock.NewRows([]string{"id", "class_id", "school_id"}))

	metrics := service.NewMetricsService()
	analytics := service.NewAnalyticsService(repository.NewRecordStore(sqlx.NewDb(db, "postgres")), metrics, zap.NewNop(), service.AnalyticsConfig{})
	h := handler.NewAnalyticsHandler(analytics, service.NewScopeResolver(nil, time.Now), nil)

	tokens := staticTokens{
		"student": {UserID: routeStudent, Role: models.RoleStudent},
		"teacher": {UserID: routeTeacher, Role: models.RoleTeacher},
	}
	r := gin.New()
	registerAnalyticsRoutes(r.Group("/api/v1"), tokens, h)
	return r
}

func get(r *gin.Engine, target, token string) int {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestAnalyticsRoutesEnforceRoles(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/v1/analytics/grades", ""))
	assert.Equal(t, http.StatusForbidden, get(r, "/api/v1/analytics/grades", "student"))
	assert.Equal(t, http.StatusForbidden, get(r, "/api/v1/analytics/school-performance", "teacher"))
	assert.Equal(t, http.StatusForbidden, get(r, "/api/v1/analytics/teacher-performance?teacherId=someone-else", "teacher"))
	assert.Equal(t, http.StatusForbidden, get(r, "/api/v1/analytics/system", "teacher"))
}

func TestAnalyticsRoutesAllowSelfStudent(t *testing.T) {
	r := newTestRouter(t)

	code := get(r, "/api/v1/analytics/student-vs-class?studentId="+routeStudent+"&subject="+routeSubject+"&examType=final", "student")
	assert.Equal(t, http.StatusNotFound, code, "the student passes RBAC and the unknown record yields not found")
}
