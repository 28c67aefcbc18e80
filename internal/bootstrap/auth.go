package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ayabeauty/storefront/config"
	"github.com/ayabeauty/storefront/internal/adapters/memory"
	redisadapter "github.com/ayabeauty/storefront/internal/adapters/redis"
	"github.com/ayabeauty/storefront/internal/ports"
	"github.com/ayabeauty/storefront/internal/service"
	"github.com/redis/go-redis/v9"
)

// AuthDeps contains the inputs for BuildAuth.
type AuthDeps struct {
	Config *config.AppConfig
	// Redis is required when Config.Auth.TokenStore is redis.
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// Sweeper periodically drops expired entries until ctx is done.
type Sweeper struct {
	Name string
	Run  func(ctx context.Context) error
}

// AuthComponents is the wired admin authentication stack.
type AuthComponents struct {
	Service *service.AuthService
	Tokens  ports.TokenStore
	Limiter ports.LoginLimiter
	// Sweepers is empty for the Redis backends, which expire keys themselves.
	Sweepers []Sweeper
}

var errRedisRequired = errors.New("TOKEN_STORE=redis requires a redis client")

// BuildAuth selects the token store and login limiter backends and builds the AuthService.
func BuildAuth(deps AuthDeps) (*AuthComponents, error) {
	if deps.Config == nil {
		return nil, errors.New("auth config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	authCfg := deps.Config.Auth

	var (
		comps *AuthComponents
		err   error
	)
	switch authCfg.TokenStore {
	case config.TokenStoreRedis:
		comps, err = buildRedisAuth(deps.Redis, deps.Config.Redis.KeyPrefix, authCfg)
	default:
		comps = buildMemoryAuth(authCfg)
	}
	if err != nil {
		return nil, err
	}

	svc, err := service.NewAuthService(service.AuthServiceOptions{
		Tokens: comps.Tokens,
		Policy: service.LoginPolicy{
			Secret:       authCfg.AdminPassword,
			BcryptCost:   authCfg.BcryptCost,
			Limiter:      comps.Limiter,
			FailureDelay: authCfg.FailureDelay,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}
	comps.Service = svc

	logger.Info("admin auth configured",
		"token_store", authCfg.TokenStore,
		"session_ttl", authCfg.SessionTTL,
		"login_limit", authCfg.LoginLimit.Enabled,
	)
	return comps, nil
}

func buildMemoryAuth(cfg config.AuthConfig) *AuthComponents {
	tokens := memory.NewTokenStore(memory.TokenStoreOptions{TTL: cfg.SessionTTL})
	comps := &AuthComponents{
		Tokens:   tokens,
		Sweepers: []Sweeper{{Name: "token sweeper", Run: sweepEvery(tokens.RunSweeper, cfg.SweepInterval)}},
	}
	if cfg.LoginLimit.Enabled {
		limiter := memory.NewLoginLimiter(memory.LimiterOptions{
			MaxAttempts: cfg.LoginLimit.MaxAttempts,
			Window:      cfg.LoginLimit.Window,
			Block:       cfg.LoginLimit.Block,
		})
		comps.Limiter = limiter
		comps.Sweepers = append(comps.Sweepers, Sweeper{
			Name: "login limiter sweeper",
			Run:  sweepEvery(limiter.RunSweeper, cfg.SweepInterval),
		})
	}
	return comps
}

func buildRedisAuth(client redis.UniversalClient, prefix string, cfg config.AuthConfig) (*AuthComponents, error) {
	if client == nil {
		return nil, errRedisRequired
	}
	comps := &AuthComponents{
		Tokens: redisadapter.NewTokenStore(client, redisadapter.TokenStoreOptions{
			Prefix: prefix + redisadapter.DefaultTokenPrefix,
			TTL:    cfg.SessionTTL,
		}),
	}
	if cfg.LoginLimit.Enabled {
		comps.Limiter = redisadapter.NewLoginLimiter(client, redisadapter.LimiterOptions{
			Prefix:      prefix + "login_limit:",
			MaxAttempts: cfg.LoginLimit.MaxAttempts,
			Window:      cfg.LoginLimit.Window,
			Block:       cfg.LoginLimit.Block,
		})
	}
	return comps, nil
}

func sweepEvery(run func(context.Context, time.Duration) error, interval time.Duration) func(context.Context) error {
	return func(ctx context.Context) error { return run(ctx, interval) }
}
