package credit

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCreds    = "invalid_credentials"
	TextCodeInvalidToken    = "invalid_token"
	TextCodeForbidden       = "insufficient_permissions"
	TextCodeCPFRegistered   = "cpf_registered"
	TextCodeEmailRegistered = "email_registered"
	TextCodeEmptyPassword   = "empty_password"
	TextCodeMissingSubject  = "missing_token_subject"
	TextCodeOwnerNotFound   = "debt_owner_not_found"
	TextCodeUserNotFound    = "user_not_found"
)

// ErrIncorrectCredentials is the single error returned for a failed login.
// A missing CPF and a wrong password are indistinguishable on purpose so the
// endpoint cannot be used to enumerate registered users.
var ErrIncorrectCredentials = errors.New("incorrect CPF or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidToken covers every token rejection: bad signature, malformed
// payload, and elapsed expiry. The causes are collapsed so a caller never
// learns which check failed.
var ErrInvalidToken = errors.New("could not validate credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken).
	WithCode(errors.CodeUnauthorized)

// ErrInsufficientPermissions is returned when a valid identity lacks the
// admin role. Distinct from ErrInvalidToken: 403, not 401.
var ErrInsufficientPermissions = errors.New("insufficient permissions", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrCPFRegistered is returned when registering an already known CPF.
var ErrCPFRegistered = errors.New("CPF already registered", errors.CategoryConflict).
	WithTextCode(TextCodeCPFRegistered).
	WithCode(errors.CodeConflict)

// ErrEmailRegistered is returned when registering an already known email.
var ErrEmailRegistered = errors.New("email already registered", errors.CategoryConflict).
	WithTextCode(TextCodeEmailRegistered).
	WithCode(errors.CodeConflict)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrMissingSubject flags a programming error: issuing a token without a
// subject. Never caused by user input.
var ErrMissingSubject = errors.New("token subject is required", errors.CategoryInternal).
	WithTextCode(TextCodeMissingSubject).
	WithCode(errors.CodeInternal)

// ErrDebtOwnerNotFound is returned when an admin records a debt against an
// unknown CPF.
var ErrDebtOwnerNotFound = errors.New("debt owner not found", errors.CategoryNotFound).
	WithTextCode(TextCodeOwnerNotFound).
	WithCode(errors.CodeNotFound)

// ErrUserNotFound is the storage-level miss for user lookups. It stays
// internal to the package: public surfaces translate it into
// ErrIncorrectCredentials or ErrInvalidToken before it escapes.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// IsUniqueViolation reports whether err is a unique-constraint failure from
// the database. Matches both sqlite and postgres error text.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
