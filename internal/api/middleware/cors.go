package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const corsMaxAge = 12 * time.Hour

// CORS allows the study frontend to call the API from the browser
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization",
			"X-Request-ID", "X-User-ID", "X-User-Email", "X-User-Role",
		},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        corsMaxAge,
	})
}
