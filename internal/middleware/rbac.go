package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-analytics-api/internal/models"
	appErrors "github.com/noah-isme/sma-analytics-api/pkg/errors"
	"github.com/noah-isme/sma-analytics-api/pkg/response"
)

// RequireRoles allows the request through when the caller holds one of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return SelfOrRoles("", roles...)
}

// SelfOrRoles allows callers holding one of roles, and any caller whose user id equals the
// selfParam query parameter. An empty selfParam disables the self check.
func SelfOrRoles(selfParam string, roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok || claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; ok {
			c.Next()
			return
		}

		if selfParam != "" {
			if target := c.Query(selfParam); target != "" && target == claims.UserID {
				c.Next()
				return
			}
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
