package config

import (
	"errors"
	"os"
	"strings"
)

const (
	// EnvDevelopment is the default application environment.
	EnvDevelopment = "development"
	// EnvProduction turns on Secure session cookies.
	EnvProduction = "production"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: admin password, session and login throttling
//   - database.go: PostgreSQL and Redis
//   - http.go: HTTP server and cookies
//   - imagehost.go: product image hosting
type AppConfig struct {
	// Env is the deployment environment. NODE_ENV is used when APP_ENV is unset.
	Env string `env:"APP_ENV"`

	// Admin authentication configuration
	Auth AuthConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Image host configuration
	ImageHost ImageHostConfig `envPrefix:"IMAGEHOST_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.detectEnv()
	c.Auth.Sanitize()
	c.Redis.Sanitize()
	c.HTTP.Sanitize()
	c.ImageHost.Sanitize()
}

// detectEnv falls back to NODE_ENV, which the storefront's frontend tooling already sets.
func (c *AppConfig) detectEnv() {
	env := strings.ToLower(strings.TrimSpace(c.Env))
	if env == "" {
		env = strings.ToLower(strings.TrimSpace(os.Getenv("NODE_ENV")))
	}
	switch env {
	case "prod", EnvProduction:
		c.Env = EnvProduction
	case "":
		c.Env = EnvDevelopment
	default:
		c.Env = env
	}
}

// IsProduction reports whether the application runs in production.
func (c *AppConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate checks the settings the HTTP server cannot start without.
func (c *AppConfig) Validate() error {
	var errs []error
	if err := c.Auth.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Auth.TokenStore == TokenStoreRedis && strings.TrimSpace(c.Redis.URI) == "" &&
		!c.Redis.UseSentinel && !c.Redis.UseCluster {
		errs = append(errs, errors.New("TOKEN_STORE=redis requires REDIS_URI"))
	}
	return errors.Join(errs...)
}
