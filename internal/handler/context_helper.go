package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-analytics-api/internal/middleware"
	"github.com/noah-isme/sma-analytics-api/internal/models"
)

// claimsFromContext returns the caller claims stored by the JWT middleware, or nil for
// anonymous requests.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
