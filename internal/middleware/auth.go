package middleware

import (
	"net/http"

	"vocab-service/internal/models"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// AuthRequired rejects requests without a valid bearer token and stores the
// caller's identity on the gin context.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.GetHeader("Authorization"))
		claims, err := ValidateToken(secret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "INVALID_TOKEN",
			})
			c.Abort()
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// AdminRequired runs after AuthRequired and rejects non-admin callers.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin role required",
				"code":  "FORBIDDEN",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id from the context.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
