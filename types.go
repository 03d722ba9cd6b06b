package credit

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Authenticator holds the operations the HTTP layer needs from the auth core.
type Authenticator interface {
	Login(ctx context.Context, cpf, password string) (string, error)
	Authenticate(ctx context.Context, rawToken string) (*User, error)
	AuthenticateAdmin(ctx context.Context, rawToken string) (*User, error)
	TokenService() TokenService
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	// Issue signs a token for the subject with the configured TTL. An
	// explicit ttl overrides the default. An empty subject is a contract
	// violation and fails with ErrMissingSubject.
	Issue(subject string, isAdmin bool, ttl ...time.Duration) (string, error)
	// Validate checks signature and expiry and returns the decoded claims.
	// Every failure surfaces as ErrInvalidToken.
	Validate(raw string) (*JWTClaims, error)
}

// PasswordAuthenticator hashes and verifies passwords.
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CREDIT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CREDIT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CREDIT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
