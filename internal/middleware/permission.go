package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinealis/vinea-backend/internal/common"
)

// Role names seeded by the migration. Authorization is decided here at the
// API boundary; services only ever receive the already-validated actor ID.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// RequireRole returns a middleware that admits users holding any of the
// given roles. Admin implies editor. JWTAuth must run first.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles)+1)
	for _, r := range roles {
		allowed[r] = true
	}
	// admin passes every role gate
	allowed[RoleAdmin] = true

	return func(c *gin.Context) {
		for _, role := range GetRoles(c) {
			if allowed[role] {
				c.Next()
				return
			}
		}
		common.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions", nil)
		c.Abort()
	}
}

// RequireEditor is a convenience gate for content editing routes
func RequireEditor() gin.HandlerFunc {
	return RequireRole(RoleEditor)
}

// RequireAdmin is a convenience gate for admin-only routes
func RequireAdmin() gin.HandlerFunc {
	return RequireRole()
}
