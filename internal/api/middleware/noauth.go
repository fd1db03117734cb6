package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoAuth admits every request under a shared anonymous session. Used for
// local development when AUTH_MODE=none.
func NoAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("session_id", "anonymous")
		c.Next()
	}
}
