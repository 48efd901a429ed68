package response

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/sma-analytics-api/pkg/errors"
)

// Envelope is the uniform contract returned by every analytics endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// Success wraps a computed result.
func Success(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// Failure wraps an identified failure. Causes of internal errors are never exposed.
func Failure(err error) (int, Envelope) {
	appErr := appErrors.FromError(err)
	return appErr.Status, Envelope{Success: false, Message: appErr.Message, Code: appErr.Code}
}

// JSON sends a success envelope with the given status.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Success(data))
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	status, envelope := Failure(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, envelope)
}
