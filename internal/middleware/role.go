package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/MoisesFigueroaV/panorama-sub000/pkg/response"
)

// RequireAuth returns a middleware that rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionUserID(c) == 0 {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole returns a middleware that allows only sessions whose role is in
// the given set. Anonymous requests get 401, authenticated ones without a
// matching role get 403.
func RequireRole(roleIDs ...int) gin.HandlerFunc {
	allowed := make(map[int]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		allowed[id] = struct{}{}
	}
	return func(c *gin.Context) {
		if SessionUserID(c) == 0 {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		roleID, ok := SessionRoleID(c)
		if !ok {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		if _, ok := allowed[roleID]; !ok {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
