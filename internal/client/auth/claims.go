package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// idTokenExpiry reads the exp claim of a token without verifying its
// signature; the token comes straight from the provider over TLS and is
// only inspected to keep ExpiresAt honest. ok is false when the token is
// not a JWT or carries no exp.
func idTokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// idTokenSubject returns the sub and email claims, if present.
func idTokenSubject(token string) (sub, email string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", ""
	}
	sub, _ = claims.GetSubject()
	if e, ok := claims["email"].(string); ok {
		email = e
	}
	return sub, email
}
