package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"flavorfusion/internal/auth"
)

const claimsKey = "claims"

// CookieAuth guards owner-scoped routes. The session token travels in the
// HTTP-only cookie; a missing or unverifiable cookie ends the request with
// 401 before the handler runs.
func CookieAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(auth.CookieName)
		if err != nil || strings.TrimSpace(raw) == "" {
			log.Println("[AUTH] [ERROR] missing token cookie")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorised Access"})
			return
		}

		claims, err := auth.Verify(raw, secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorised Access"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// EmailFromContext returns the authenticated email claim, or "" when the
// request never passed CookieAuth.
func EmailFromContext(c *gin.Context) string {
	value, ok := c.Get(claimsKey)
	if !ok {
		return ""
	}
	claims, ok := value.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}
