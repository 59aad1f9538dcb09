package middleware

import (
	"net/http"
	"strings"

	"warehouse/internal/authz"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets requests through whose user role is one of
// allowedRoles. Assumes RequireAuth ran earlier on the chain.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString("userRole")
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized: no role on context",
			})
			return
		}

		if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "forbidden: role not allowed",
			})
			return
		}

		c.Next()
	}
}

// RequirePermission gates a route on one permission string. The admin
// sentinel passes every check.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized: no user on context",
			})
			return
		}

		if !authz.Can(user, permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "forbidden: missing permission " + permission,
			})
			return
		}

		c.Next()
	}
}
