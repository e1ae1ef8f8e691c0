package api

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultTokenTTL caps how long a token is kept by the credential store.
const DefaultTokenTTL = 24 * time.Hour

// TokenExpiry returns the exp claim of a JWT without verifying its signature.
// The client only uses it to avoid keeping a token longer than the backend
// honours it; the backend remains the authority on validity.
func TokenExpiry(token string) (time.Time, bool) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func tokenTTL(token string, limit time.Duration, now time.Time) time.Duration {
	exp, ok := TokenExpiry(token)
	if !ok {
		return limit
	}
	remaining := exp.Sub(now)
	if remaining <= 0 || remaining > limit {
		// Past expiries are left to the backend to reject with a 401.
		return limit
	}
	return remaining
}
