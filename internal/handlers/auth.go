package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"flavorfusion/internal/auth"
	"flavorfusion/internal/models"
)

// POST /jwt
//
// Signs the caller-supplied claims and hands the token back as an HTTP-only
// cookie. When the users collection holds a credential for the claimed
// email, the caller must present the matching password; accounts without a
// stored credential keep the original externally-authenticated flow.
func IssueToken(db *mongo.Database, secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /jwt"
		defer handlePanic(c, route)

		var claims map[string]interface{}
		if err := c.ShouldBindJSON(&claims); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		email, _ := claims["email"].(string)
		email = strings.TrimSpace(email)
		if email == "" {
			respondWithError(c, http.StatusBadRequest, route, "email is required")
			return
		}

		password, _ := claims["password"].(string)
		// The password is only compared against the stored hash; it must
		// never end up inside a signed token.
		delete(claims, "password")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == nil && user.PasswordHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
				log.Println("[AUTH] [ERROR] credential check failed for:", email)
				respondWithError(c, http.StatusUnauthorized, route, "invalid credentials")
				return
			}
		} else if err != nil && err != mongo.ErrNoDocuments {
			log.Printf("[%s] user lookup failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		token, err := auth.Issue(jwt.MapClaims(claims), secret, ttl)
		if err != nil {
			log.Printf("[%s] signing failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		log.Println("[AUTH] [INFO] token issued for:", email)
		setSessionCookie(c, token, ttl)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// POST /logout
//
// Clears the cookie client-side. No server state backs the session, so
// expiry remains the only hard deauthorization.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSessionCookie(c)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(auth.CookieName, token, int(ttl.Seconds()), "/", "", true, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", true, true)
}
