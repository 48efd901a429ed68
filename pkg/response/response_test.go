package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-analytics-api/pkg/errors"
)

func TestJSONWritesSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	JSON(c, http.StatusOK, map[string]int{"count": 4})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"success":true,"data":{"count":4}}`, rec.Body.String())
}

func TestJSONKeepsEmptyObject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	JSON(c, http.StatusOK, struct{}{})

	assert.JSONEq(t, `{"success":true,"data":{}}`, rec.Body.String())
}

func TestErrorHidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, appErrors.Wrap(errors.New("pq: connection refused"), appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "internal server error", envelope["message"])
	assert.Equal(t, "STORE_UNAVAILABLE", envelope["code"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestFailureForCallerError(t *testing.T) {
	status, envelope := Failure(appErrors.Clone(appErrors.ErrMissingParameter, "examType is required"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, envelope.Success)
	assert.Equal(t, "examType is required", envelope.Message)
	assert.Nil(t, envelope.Data)
}
