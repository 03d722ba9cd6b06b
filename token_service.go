package credit

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window used when no override is given.
const DefaultTokenTTL = 30 * time.Minute

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	tokenTTL   time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, tokenTTL time.Duration, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// Issue creates a signed HS256 token for the subject. The subject is a hard
// contract: callers always have a CPF by the time they mint a token, so an
// empty value fails with ErrMissingSubject rather than producing an
// anonymous token.
func (ts *TokenServiceImpl) Issue(subject string, isAdmin bool, ttl ...time.Duration) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	window := ts.tokenTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		window = ttl[0]
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(window)),
		},
		IsAdmin: isAdmin,
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", ErrMissingSubject
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		ts.logger.Error("TokenService failed to sign claims", "error", err)
		return "", err
	}

	return signedString, nil
}

// Validate parses and verifies a token string. Signature failures, malformed
// tokens, and elapsed expiry all collapse into ErrInvalidToken; the cause is
// logged server-side only. No leeway is granted: a token whose exp equals
// the current instant is already expired.
func (ts *TokenServiceImpl) Validate(raw string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		ts.logger.Debug("TokenService validate rejected token", "error", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode claims")
		return nil, ErrInvalidToken
	}

	if claims.Subject() == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
