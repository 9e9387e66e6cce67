package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/drivesphere/backend/pkg/response"
)

// RequireRole returns a middleware that allows only the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{})
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		roleVal, ok := c.Get(ContextUserRole)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		role, _ := roleVal.(string)
		if _, ok := allowed[role]; !ok {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CompanyScope returns a middleware for /companies/:id sub-resources. A
// superadmin passes for any company; admins and drivers only for their own.
func CompanyScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) == "superadmin" {
			c.Next()
			return
		}
		if c.GetString(ContextCompanyID) != c.Param("id") {
			response.Forbidden(c, "not authorized for this company")
			c.Abort()
			return
		}
		c.Next()
	}
}
