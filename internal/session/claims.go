package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// tokenExpired inspects a restored access token's exp claim without
// verifying the signature; verification is the server's job, this only
// avoids restoring a session the server is guaranteed to reject.
// Unreadable tokens and tokens without an expiry are kept.
func tokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.Before(now)
}
