package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GatewayAuth trusts identity headers set by the study frontend gateway
// (X-User-ID, X-User-Email, X-User-Role). The gateway handles participant
// authentication and consent checks upstream, so when AUTH_MODE=gateway the
// API accepts these headers unconditionally.
//
// Only use this behind the gateway with proper network isolation.
func GatewayAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-User-ID")
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Missing X-User-ID header from gateway",
			})
			c.Abort()
			return
		}

		c.Set("session_id", sessionID)
		if email := c.GetHeader("X-User-Email"); email != "" {
			c.Set("session_email", email)
		}
		if role := c.GetHeader("X-User-Role"); role != "" {
			c.Set("session_role", role)
		}

		c.Next()
	}
}

// SessionFromContext returns the caller's session ID as resolved by whichever
// auth middleware handled the request.
func SessionFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get("session_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// SessionEmailFromContext returns the participant email when the auth layer
// provided one.
func SessionEmailFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get("session_email")
	if !exists {
		return "", false
	}
	e, ok := v.(string)
	return e, ok
}
