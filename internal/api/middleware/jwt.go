package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/AkademiaSztuki/awa-api/internal/config"
)

const bearerPrefix = "Bearer"

// Claims are the gateway-issued token claims. The subject is the study
// session ID, there is no user table behind it.
type Claims struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuth validates gateway-issued JWTs locally. Used when AUTH_MODE=jwt,
// for deployments where the API is reachable without network isolation.
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// Try to get token from Authorization header first
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == bearerPrefix {
				tokenString = parts[1]
			}
		}

		// If no header, try cookie (for web users)
		if tokenString == "" {
			tokenString, _ = c.Cookie("access_token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			// Verify signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		sessionID := claims.SessionID
		if sessionID == "" {
			sessionID = claims.Subject
		}
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token carries no session"})
			c.Abort()
			return
		}

		c.Set("session_id", sessionID)
		if claims.Email != "" {
			c.Set("session_email", claims.Email)
		}

		c.Next()
	}
}

// AuthFor selects the auth middleware for the configured mode
func AuthFor(cfg *config.Config) gin.HandlerFunc {
	switch cfg.AuthMode {
	case "gateway":
		return GatewayAuth()
	case "jwt":
		return JWTAuth(cfg)
	default:
		return NoAuth()
	}
}
