package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxAdminID    = "admin_id"
	ctxAdminEmail = "admin_email"
)

// RequireSession validates the Bearer session token and stashes the admin
// identity in the request context.
func RequireSession(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing session token"})
			return
		}

		_, admin, err := svc.Check(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid or expired session"})
			return
		}

		c.Set(ctxAdminID, admin.ID.String())
		c.Set(ctxAdminEmail, admin.Email)
		c.Next()
	}
}

// AdminID returns the authenticated admin's id from the Gin context.
func AdminID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(ctxAdminID))
}

// AdminEmail returns the authenticated admin's email from the Gin context.
func AdminEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(ctxAdminEmail))
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
