package credit

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Auther implements Authenticator on top of the token service and the user
// repository.
type Auther struct {
	repo         RepositoryManager
	tokenService TokenService
	signingKey   []byte
	tokenTTL     time.Duration
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(repo RepositoryManager, cfg *Config) *Auther {
	signingKey := []byte(cfg.GetSigningKey())
	tokenTTL := cfg.TokenTTL()
	return &Auther{
		repo:         repo,
		tokenService: NewTokenService(signingKey, tokenTTL, defLogger{}),
		signingKey:   signingKey,
		tokenTTL:     tokenTTL,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	// Update the TokenService logger as well
	s.tokenService = NewTokenService(s.signingKey, s.tokenTTL, logger)
	return s
}

// WithTokenService overrides the token service, mostly for tests.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	s.tokenService = ts
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the CPF/password pair and issues a token embedding the
// subject and the admin flag. An unknown CPF and a wrong password return the
// identical ErrIncorrectCredentials so login cannot enumerate users.
func (s *Auther) Login(ctx context.Context, cpf, password string) (string, error) {
	user, err := s.repo.Users().GetByCPF(ctx, cpf)
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.logger.Debug("Login unknown CPF")
			// burn a compare so the miss path costs the same as a mismatch
			_ = ComparePasswordAndHash(password, dummyCompareHash())
			return "", ErrIncorrectCredentials
		}
		s.logger.Error("Login user lookup error", "error", err)
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during login")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.logger.Debug("Login password mismatch")
		return "", ErrIncorrectCredentials
	}

	token, err := s.tokenService.Issue(user.CPF, user.IsAdmin)
	if err != nil {
		s.logger.Error("Login token issuance error", "error", err)
		return "", err
	}

	return token, nil
}

// Authenticate resolves a raw bearer token into the user it identifies. An
// invalid token and a subject with no matching record collapse into the same
// ErrInvalidToken: the caller only learns that authentication failed.
func (s *Auther) Authenticate(ctx context.Context, rawToken string) (*User, error) {
	claims, err := s.tokenService.Validate(rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Users().GetByCPF(ctx, claims.Subject())
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.logger.Debug("Authenticate token subject has no user record")
			return nil, ErrInvalidToken
		}
		s.logger.Error("Authenticate user lookup error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during authentication")
	}

	return user, nil
}

// AuthenticateAdmin composes Authenticate with the admin guard. The failure
// kinds stay distinct: a bad token is unauthenticated (401), a valid token
// for a non-admin is forbidden (403).
func (s *Auther) AuthenticateAdmin(ctx context.Context, rawToken string) (*User, error) {
	user, err := s.Authenticate(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if err := RequireAdmin(user); err != nil {
		return nil, err
	}

	return user, nil
}

// RequireAdmin is the access guard for admin-only operations.
func RequireAdmin(user *User) error {
	if !user.Admin() {
		return ErrInsufficientPermissions
	}
	return nil
}
