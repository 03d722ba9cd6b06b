package credit_test

import (
	"testing"

	credit "github.com/creditsys/go-credit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true, // bcrypt can hash empty strings!
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := credit.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			err = credit.ComparePasswordAndHash(tt.password, hash)
			assert.NoError(t, err)
		})
	}
}

func TestComparePasswordAndHash(t *testing.T) {
	password := "testPassword123!"
	hash, err := credit.HashPassword(password)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  bool
	}{
		{
			name:     "Matching password",
			password: password,
			hash:     hash,
			wantErr:  false,
		},
		{
			name:     "Wrong password",
			password: "wrongPassword",
			hash:     hash,
			wantErr:  true,
		},
		{
			name:     "Invalid hash",
			password: password,
			hash:     "invalidhash",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := credit.ComparePasswordAndHash(tt.password, tt.hash)

			if tt.wantErr {
				assert.ErrorIs(t, err, credit.ErrIncorrectCredentials)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCompareCollapsesFailureCauses(t *testing.T) {
	hash, err := credit.HashPassword("secret1")
	require.NoError(t, err)

	wrongPassword := credit.ComparePasswordAndHash("secret2", hash)
	malformedHash := credit.ComparePasswordAndHash("secret1", "not-a-bcrypt-hash")

	// a wrong password and a corrupt stored hash are indistinguishable
	assert.Equal(t, wrongPassword, malformedHash)
}
