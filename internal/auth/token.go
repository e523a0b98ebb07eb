package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie the token travels in.
const CookieName = "token"

// ErrInvalidToken covers every verification failure: bad signature,
// tampering and expiry all look the same to callers.
var ErrInvalidToken = errors.New("invalid token")

// Issue signs the supplied claims with HS256 and stamps an expiry of
// now + ttl. The caller's claims map is not modified.
func Issue(claims jwt.MapClaims, secret string, ttl time.Duration) (string, error) {
	signed := jwt.MapClaims{}
	for k, v := range claims {
		signed[k] = v
	}
	signed["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, signed)
	return token.SignedString([]byte(secret))
}

// Verify checks signature and expiry and returns the embedded claims.
func Verify(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
