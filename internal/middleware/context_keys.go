package middleware

import (
	"github.com/dahira-app/dahira_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the request context.
const userIDKey = contextKey("userID")

// userRolesKey is the key used to store the authenticated user's roles in the request context.
const userRolesKey = contextKey("userRoles")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserRolesFromContext retrieves the authenticated user's roles from the Gin context.
func GetUserRolesFromContext(c *gin.Context) []domain.UserRole {
	roles, ok := c.Request.Context().Value(userRolesKey).([]domain.UserRole)
	if !ok {
		return nil
	}
	return roles
}
