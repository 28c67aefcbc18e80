package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ayabeauty/storefront/config"
	httpx "github.com/ayabeauty/storefront/internal/http"
	"github.com/ayabeauty/storefront/internal/service"
)

// HTTPHandlerConfig contains the inputs for BuildHTTPHandler.
type HTTPHandlerConfig struct {
	Config    *config.AppConfig
	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Readiness map[string]httpx.ReadinessCheck
	Logger    *slog.Logger
}

// BuildHTTPHandler builds the router with cookie settings derived from the environment.
func BuildHTTPHandler(cfg HTTPHandlerConfig) http.Handler {
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Auth: cfg.Auth,
		Cookies: httpx.NewSessionCookies(httpx.SessionCookieOptions{
			MaxAge: appCfg.Auth.SessionTTL,
			Secure: appCfg.IsProduction(),
			Domain: appCfg.HTTP.CookieDomain,
		}),
		TrustProxy:     appCfg.HTTP.TrustProxy,
		LoginPath:      appCfg.HTTP.LoginPath,
		MaxUploadBytes: appCfg.HTTP.MaxUploadBytes,
		Readiness:      cfg.Readiness,
		Logger:         cfg.Logger,
	}
	// A nil *CatalogService must not become a non-nil interface.
	if cfg.Catalog != nil {
		services.Catalog = cfg.Catalog
	}
	return httpx.NewRouter(services)
}

func newServer(handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// serveUntilDone runs server until ctx is canceled, then shuts it down within shutdownTimeout.
func serveUntilDone(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
