package credit_test

import (
	stderrors "errors"
	"testing"

	credit "github.com/creditsys/go-credit"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      *goerrors.Error
		category goerrors.Category
		code     int
		textCode string
	}{
		{
			name:     "incorrect credentials",
			err:      credit.ErrIncorrectCredentials,
			category: goerrors.CategoryAuth,
			code:     goerrors.CodeUnauthorized,
			textCode: credit.TextCodeInvalidCreds,
		},
		{
			name:     "invalid token",
			err:      credit.ErrInvalidToken,
			category: goerrors.CategoryAuth,
			code:     goerrors.CodeUnauthorized,
			textCode: credit.TextCodeInvalidToken,
		},
		{
			name:     "insufficient permissions",
			err:      credit.ErrInsufficientPermissions,
			category: goerrors.CategoryAuthz,
			code:     goerrors.CodeForbidden,
			textCode: credit.TextCodeForbidden,
		},
		{
			name:     "cpf registered",
			err:      credit.ErrCPFRegistered,
			category: goerrors.CategoryConflict,
			code:     goerrors.CodeConflict,
			textCode: credit.TextCodeCPFRegistered,
		},
		{
			name:     "email registered",
			err:      credit.ErrEmailRegistered,
			category: goerrors.CategoryConflict,
			code:     goerrors.CodeConflict,
			textCode: credit.TextCodeEmailRegistered,
		},
		{
			name:     "debt owner not found",
			err:      credit.ErrDebtOwnerNotFound,
			category: goerrors.CategoryNotFound,
			code:     goerrors.CodeNotFound,
			textCode: credit.TextCodeOwnerNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.category, tc.err.Category)
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.textCode, tc.err.TextCode)
		})
	}
}

func TestCredentialErrorsShareOneMessage(t *testing.T) {
	// a caller probing /login must not be able to tell a missing account
	// from a wrong password
	assert.Equal(t, "incorrect CPF or password", credit.ErrIncorrectCredentials.Message)

	var richErr *goerrors.Error
	require.True(t, stderrors.As(credit.ErrIncorrectCredentials, &richErr))
	assert.NotContains(t, richErr.Message, "user")
	assert.NotContains(t, richErr.Message, "exist")
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "sqlite unique",
			err:  stderrors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"),
			want: true,
		},
		{
			name: "postgres unique",
			err:  stderrors.New(`ERROR: duplicate key value violates unique constraint "users_pkey" (SQLSTATE 23505)`),
			want: true,
		},
		{
			name: "unrelated error",
			err:  stderrors.New("connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, credit.IsUniqueViolation(tc.err))
		})
	}
}
