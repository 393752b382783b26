package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// ErrTokenExpired is returned when a bearer token carries an exp claim in the past.
var ErrTokenExpired = errors.New("token expired")

// TokenExpiry reads the exp claim of a token without verifying its signature.
// The backend owns the signing key; the client only needs to know whether a
// stored credential is already stale. ok is false when the token is not a JWT
// or has no exp claim.
func TokenExpiry(tokenString string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, false
	}
	switch v := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(v), 0), true
	case int64:
		return time.Unix(v, 0), true
	default:
		return time.Time{}, false
	}
}

// CheckTokenFresh returns ErrTokenExpired when the token's exp is at or before now.
// Opaque tokens without an exp claim are treated as fresh.
func CheckTokenFresh(tokenString string, now time.Time) error {
	exp, ok := TokenExpiry(tokenString)
	if !ok {
		return nil
	}
	if !now.Before(exp) {
		return ErrTokenExpired
	}
	return nil
}
