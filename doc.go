// Package credit implements the core of a credit-record API: user
// registration and login with bcrypt credential handling, HMAC-SHA256 JWT
// issuance and verification, identity resolution, and role-gated access
// control for the admin-only debt operations.
//
// The center of the package is transport-agnostic (Authenticator,
// TokenService, RepositoryManager); fiber middleware and JSON handlers sit
// on top. Tokens are stateless: there is no server-side session store and
// no revocation list, so logout is a client-side concern (discard the
// token).
package credit
