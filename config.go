package credit

import (
	"time"

	"github.com/goliatone/go-errors"
	"github.com/joeshaw/envdecode"
)

// SigningMethod is fixed; the token service refuses anything but HMAC.
const SigningMethod = "HS256"

// DefaultAdminDomain grants the admin role to emails ending with it.
const DefaultAdminDomain = "@admin.example.com"

// Config is the process-wide configuration, read once at startup and treated
// as immutable afterwards.
type Config struct {
	// SigningKey signs every issued token. Startup fails without it.
	SigningKey string `env:"SECRET_KEY,required"`
	// TokenTTLMinutes is the token validity window in minutes.
	TokenTTLMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES,default=30"`
	// AdminDomain is the email suffix that grants the admin role at
	// registration time. Suffix match, not substring.
	AdminDomain string `env:"ADMIN_DOMAIN,default=@admin.example.com"`
	// DatabaseDSN is handed to the sqlite driver as-is.
	DatabaseDSN string `env:"DATABASE_URL,default=file:credit.db?cache=shared"`
	// ListenAddr is the HTTP bind address.
	ListenAddr string `env:"LISTEN_ADDR,default=:8080"`
}

// LoadConfig reads the configuration from the environment. A missing
// SECRET_KEY is fatal.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.StrictDecode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "invalid environment configuration").
			WithCode(errors.CodeInternal)
	}
	return cfg, nil
}

// TokenTTL returns the configured validity window as a duration.
func (c *Config) TokenTTL() time.Duration {
	if c == nil || c.TokenTTLMinutes <= 0 {
		return DefaultTokenTTL
	}
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// GetAdminDomain returns the configured admin suffix, falling back to the
// default when unset.
func (c *Config) GetAdminDomain() string {
	if c == nil || c.AdminDomain == "" {
		return DefaultAdminDomain
	}
	return c.AdminDomain
}

// GetSigningKey returns the raw signing secret.
func (c *Config) GetSigningKey() string {
	if c == nil {
		return ""
	}
	return c.SigningKey
}
