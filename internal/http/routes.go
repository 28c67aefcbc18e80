// Package httpx serves the storefront JSON API and the admin session endpoints.
package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth    AuthServiceInterface    // Required
	Catalog CatalogServiceInterface // Optional: catalog routes are not mounted when nil
	Cookies *SessionCookies         // Optional: defaults to the admin_session cookie
	// TrustProxy honors X-Forwarded-For / X-Real-IP when keying login throttling.
	TrustProxy bool
	// LoginPath is where the admin gate sends unauthenticated page requests.
	LoginPath      string
	MaxUploadBytes int64
	Readiness      map[string]ReadinessCheck
	Logger         *slog.Logger // Optional
}

// NewRouter creates and configures the HTTP router with logging and panic recovery.
func NewRouter(services RouterServices) http.Handler {
	if services.Auth == nil {
		panic("NewRouter: Auth is required") //nolint:forbidigo // Fail fast during server setup.
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cookies := services.Cookies
	if cookies == nil {
		cookies = NewSessionCookies(SessionCookieOptions{})
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.Readiness, logger))

	registerSessionRoutes(mux, &SessionHandlers{
		Svc:        services.Auth,
		Cookies:    cookies,
		TrustProxy: services.TrustProxy,
		Logger:     logger,
	})

	requireAdmin := RequireAdmin(services.Auth, cookies)
	if services.Catalog != nil {
		registerCatalogRoutes(mux, &CatalogHandlers{
			Svc:            services.Catalog,
			Logger:         logger,
			MaxUploadBytes: services.MaxUploadBytes,
		}, requireAdmin)
	}

	gate := AdminGate(services.Auth, cookies, services.LoginPath)
	mux.Handle("GET /admin", gate(http.HandlerFunc(adminLanding)))
	mux.Handle("GET /admin/", gate(http.HandlerFunc(adminLanding)))
	mux.Handle("GET /admin/api/", requireAdmin(http.HandlerFunc(notFound)))
	mux.HandleFunc("/", notFound)

	return Recover(logger)(Logging(logger)(mux))
}

func registerSessionRoutes(mux *http.ServeMux, h *SessionHandlers) {
	mux.HandleFunc("GET /admin/session/check", h.Check)
	mux.HandleFunc("POST /admin/session/login", h.Login)
	mux.HandleFunc("POST /admin/session/logout", h.Logout)
}

func registerCatalogRoutes(mux *http.ServeMux, h *CatalogHandlers, adminOnly func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/categories", h.Categories)
	mux.HandleFunc("GET /api/gallery", h.Gallery)
	mux.HandleFunc("GET /api/products", h.List)
	mux.HandleFunc("GET /api/products/{id}", h.Get)
	mux.HandleFunc("POST /api/products/lookup", h.Lookup)

	mux.Handle("POST /admin/api/products", adminOnly(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /admin/api/products/{id}", adminOnly(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /admin/api/products/{id}", adminOnly(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /admin/api/images", adminOnly(http.HandlerFunc(h.UploadImage)))
	mux.Handle("POST /admin/api/images/delete", adminOnly(http.HandlerFunc(h.DeleteImage)))
}

// adminLanding answers gated admin navigation once the session is verified.
func adminLanding(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	_, authenticated := GetSessionFromContext(r.Context())
	WriteJSON(w, http.StatusOK, map[string]any{"ok": authenticated, "path": r.URL.Path})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errNotFound})
}
