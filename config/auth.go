package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// TokenStoreBackend selects where admin session tokens are kept.
type TokenStoreBackend string

const (
	// TokenStoreMemory keeps tokens in process memory. Sessions do not survive a restart
	// and are not shared between instances.
	TokenStoreMemory TokenStoreBackend = "memory"
	// TokenStoreRedis keeps tokens in Redis so every instance sees the same sessions.
	TokenStoreRedis TokenStoreBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for TokenStoreBackend.
func (b *TokenStoreBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis":
		*b = TokenStoreBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid TokenStoreBackend: %q (valid options: memory, redis)", v)
	}
}

// LoginLimitConfig controls per-client throttling of failed admin logins.
type LoginLimitConfig struct {
	Enabled     bool          `env:"ENABLED"      envDefault:"true"`
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"5"`
	Window      time.Duration `env:"WINDOW"       envDefault:"1m"`
	Block       time.Duration `env:"BLOCK"        envDefault:"5m"`
}

// AuthConfig groups admin authentication configuration.
type AuthConfig struct {
	// AdminPassword is the shared admin secret. Required to serve HTTP.
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// BcryptCost is the work factor used to hash the secret at startup.
	BcryptCost int `env:"ADMIN_BCRYPT_COST" envDefault:"10"`

	// SessionTTL is both the server-side token lifetime and the cookie Max-Age.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// TokenStore selects the token backend.
	TokenStore TokenStoreBackend `env:"TOKEN_STORE" envDefault:"memory"`

	// SweepInterval is how often the memory backends drop expired entries.
	SweepInterval time.Duration `env:"TOKEN_SWEEP_INTERVAL" envDefault:"10m"`

	// FailureDelay is slept after each rejected password.
	FailureDelay time.Duration `env:"LOGIN_FAILURE_DELAY" envDefault:"1s"`

	LoginLimit LoginLimitConfig `envPrefix:"LOGIN_LIMIT_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.BcryptCost < bcrypt.MinCost || a.BcryptCost > bcrypt.MaxCost {
		a.BcryptCost = bcrypt.DefaultCost
	}
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
	if a.TokenStore == "" {
		a.TokenStore = TokenStoreMemory
	}
	if a.SweepInterval <= 0 {
		a.SweepInterval = 10 * time.Minute
	}
	if a.FailureDelay < 0 {
		a.FailureDelay = 0
	}
	if a.LoginLimit.MaxAttempts < 1 {
		a.LoginLimit.MaxAttempts = 5
	}
	if a.LoginLimit.Window <= 0 {
		a.LoginLimit.Window = time.Minute
	}
	if a.LoginLimit.Block <= 0 {
		a.LoginLimit.Block = 5 * time.Minute
	}
}

// Validate reports missing auth settings.
func (a *AuthConfig) Validate() error {
	if a.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD is required")
	}
	return nil
}
