package service

import (
	"time"

	"myclient/helpers"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the informational part of the backend's access token. The signature is never checked here;
// the backend remains the only authority on whether a token is valid. Times are nil when the token lacks them.
type TokenClaims struct {
	Subject   string     `json:"sub,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
}

// Expired reports whether the token carries an expiry that is not after now. Tokens without exp never expire here.
func (c TokenClaims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

// ParseTokenClaims decodes the claims of a JWT without verifying it.
//
// Returns: (claims, nil) on success; (zero, *APIError bad_parameter) when token is not a JWT.
func ParseTokenClaims(token string) (TokenClaims, error) {
	var zero TokenClaims
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return zero, NewBadParameterError("token is not a JWT", err)
	}

	var out TokenClaims
	out.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = helpers.Ptr(exp.Time.UTC())
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = helpers.Ptr(iat.Time.UTC())
	}
	return out, nil
}
