package credit_test

import (
	"testing"
	"time"

	credit "github.com/creditsys/go-credit"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key")

func newTokenService() credit.TokenService {
	return credit.NewTokenService(testSigningKey, 30*time.Minute, nil)
}

func TestTokenService_Issue(t *testing.T) {
	service := newTokenService()

	t.Run("round trips subject and admin flag", func(t *testing.T) {
		token, err := service.Issue("12345678901", true)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "12345678901", claims.Subject())
		assert.True(t, claims.Admin())
	})

	t.Run("admin flag defaults to false", func(t *testing.T) {
		token, err := service.Issue("12345678901", false)
		require.NoError(t, err)

		claims, err := service.Validate(token)
		require.NoError(t, err)
		assert.False(t, claims.Admin())

		// absent is_admin claim decodes to false as well
		parsed, err := jwt.ParseWithClaims(token, &credit.JWTClaims{}, func(*jwt.Token) (any, error) {
			return testSigningKey, nil
		})
		require.NoError(t, err)
		assert.False(t, parsed.Claims.(*credit.JWTClaims).IsAdmin)
	})

	t.Run("applies default validity window", func(t *testing.T) {
		before := time.Now()
		token, err := service.Issue("12345678901", false)
		require.NoError(t, err)

		claims, err := service.Validate(token)
		require.NoError(t, err)

		expected := before.Add(30 * time.Minute)
		assert.WithinDuration(t, expected, claims.Expires(), 5*time.Second)
	})

	t.Run("honors ttl override", func(t *testing.T) {
		token, err := service.Issue("12345678901", false, time.Hour)
		require.NoError(t, err)

		claims, err := service.Validate(token)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires(), 5*time.Second)
	})

	t.Run("empty subject is a contract violation", func(t *testing.T) {
		token, err := service.Issue("", false)
		assert.ErrorIs(t, err, credit.ErrMissingSubject)
		assert.Empty(t, token)
	})
}

func TestTokenService_Validate(t *testing.T) {
	service := newTokenService()

	signWith := func(t *testing.T, key []byte, claims *credit.JWTClaims) string {
		t.Helper()
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
		require.NoError(t, err)
		return signed
	}

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		now := time.Now()
		raw := signWith(t, []byte("other-secret"), &credit.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "12345678901",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		})

		_, err := service.Validate(raw)
		assert.ErrorIs(t, err, credit.ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		now := time.Now()
		raw := signWith(t, testSigningKey, &credit.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "12345678901",
				IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			},
		})

		_, err := service.Validate(raw)
		assert.ErrorIs(t, err, credit.ErrInvalidToken)
	})

	t.Run("exp equal to now is already expired", func(t *testing.T) {
		now := time.Now()
		raw := signWith(t, testSigningKey, &credit.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "12345678901",
				IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
				ExpiresAt: jwt.NewNumericDate(now),
			},
		})

		_, err := service.Validate(raw)
		assert.ErrorIs(t, err, credit.ErrInvalidToken)
	})

	t.Run("wrong secret and expiry are indistinguishable", func(t *testing.T) {
		now := time.Now()
		forged := signWith(t, []byte("other-secret"), &credit.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "12345678901",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		})
		expired := signWith(t, testSigningKey, &credit.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "12345678901",
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			},
		})

		_, errForged := service.Validate(forged)
		_, errExpired := service.Validate(expired)

		assert.Equal(t, errForged, errExpired)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		_, err := service.Validate("not.a.token")
		assert.ErrorIs(t, err, credit.ErrInvalidToken)
	})

	t.Run("rejects token without expiry", func(t *testing.T) {
		raw := signWith(t, testSigningKey, &credit.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "12345678901"},
		})

		_, err := service.Validate(raw)
		assert.ErrorIs(t, err, credit.ErrInvalidToken)
	})

	t.Run("rejects token without subject", func(t *testing.T) {
		raw := signWith(t, testSigningKey, &credit.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, err := service.Validate(raw)
		assert.ErrorIs(t, err, credit.ErrInvalidToken)
	})

	t.Run("rejects non-HMAC signing method", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &credit.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "12345678901",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.Validate(unsigned)
		assert.ErrorIs(t, err, credit.ErrInvalidToken)
	})
}
