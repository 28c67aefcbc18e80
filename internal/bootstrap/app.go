package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ayabeauty/storefront/config"
	httpx "github.com/ayabeauty/storefront/internal/http"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// App holds the long-lived resources of the storefront server.
type App struct {
	cfg     *config.AppConfig
	logger  *slog.Logger
	db      *sql.DB
	redis   redis.UniversalClient
	auth    *AuthComponents
	handler http.Handler
}

// NewApp connects to the backing services selected by cfg and wires the HTTP handler.
// Resources opened before a failure are released.
func NewApp(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (_ *App, err error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			if closeErr := app.Close(); closeErr != nil {
				logger.Warn("release resources after startup failure", "error", closeErr)
			}
		}
	}()

	dbCfg := DatabaseConfig{DBConfig: cfg.Postgres, RedisConfig: cfg.Redis, Logger: logger}
	if cfg.Postgres.Enabled {
		if app.db, err = ConnectDB(ctx, dbCfg); err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrationsOnStart {
			if err = RunMigrations(ctx, app.db, logger); err != nil {
				return nil, err
			}
		}
	}
	if cfg.Auth.TokenStore == config.TokenStoreRedis {
		if app.redis, err = ConnectRedis(ctx, dbCfg); err != nil {
			return nil, err
		}
	}

	if app.auth, err = BuildAuth(AuthDeps{Config: cfg, Redis: app.redis, Logger: logger}); err != nil {
		return nil, err
	}

	app.handler = BuildHTTPHandler(HTTPHandlerConfig{
		Config:    cfg,
		Auth:      app.auth.Service,
		Catalog:   BuildCatalog(CatalogDeps{DB: app.db, ImageHost: cfg.ImageHost, Logger: logger}),
		Readiness: app.readinessChecks(),
		Logger:    logger,
	})
	return app, nil
}

func (a *App) readinessChecks() map[string]httpx.ReadinessCheck {
	checks := map[string]httpx.ReadinessCheck{}
	if a.db != nil {
		checks["postgres"] = a.db.PingContext
	}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }
	}
	return checks
}

// Handler returns the wired HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Run serves HTTP and the in-memory sweepers until ctx is canceled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	server := newServer(a.handler, a.cfg.HTTP.Addr)
	g.Go(func() error {
		if err := serveUntilDone(gctx, server, a.logger); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	for _, sw := range a.auth.Sweepers {
		g.Go(func() error {
			a.logger.Info("background service started", "service", sw.Name)
			if err := sw.Run(gctx); err != nil {
				return fmt.Errorf("%s: %w", sw.Name, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Close releases database and Redis connections.
func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
