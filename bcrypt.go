package credit

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for new password hashes. Verification
// reads the cost from the hash itself, so raising this only affects new
// registrations.
var BcryptCost = 12

// HashPassword will generate a password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(h), err
}

var dummyCompare struct {
	once sync.Once
	hash string
}

// dummyCompareHash returns a throwaway hash at the current cost. Login burns
// a compare against it when the CPF is unknown so the miss path and the
// wrong-password path take comparable time.
func dummyCompareHash() string {
	dummyCompare.once.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("credit-login-timing-pad"), BcryptCost)
		if err == nil {
			dummyCompare.hash = string(h)
		}
	})
	return dummyCompare.hash
}

// ComparePasswordAndHash will validate the given cleartext password against
// the hashed password. A wrong password and a malformed stored hash collapse
// to the same error: callers only learn that the credentials did not match.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrIncorrectCredentials
	}
	return nil
}
