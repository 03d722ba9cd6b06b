package credit

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is the claim set carried by every access token: the subject CPF,
// the admin flag, and the registered iat/exp pair. An absent is_admin claim
// decodes to false.
type JWTClaims struct {
	jwt.RegisteredClaims
	IsAdmin bool `json:"is_admin,omitempty"`
}

// Subject returns the subject claim, the CPF the token asserts ownership of.
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Admin returns the role flag encoded in the token.
func (c *JWTClaims) Admin() bool {
	return c.IsAdmin
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
