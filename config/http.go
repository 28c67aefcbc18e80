package config

import "strings"

const defaultMaxUploadBytes = 10 << 20

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CookieDomain is the domain for the admin session cookie.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// TrustProxy keys login throttling on X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool `env:"HTTP_TRUST_PROXY" envDefault:"false"`

	// LoginPath is where unauthenticated admin page requests are redirected.
	LoginPath string `env:"ADMIN_LOGIN_PATH" envDefault:"/login"`

	// MaxUploadBytes bounds product image uploads.
	MaxUploadBytes int64 `env:"HTTP_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if strings.TrimSpace(h.Addr) == "" {
		h.Addr = ":8080"
	}
	h.CookieDomain = strings.TrimSpace(h.CookieDomain)
	h.LoginPath = strings.TrimSpace(h.LoginPath)
	if !strings.HasPrefix(h.LoginPath, "/") {
		h.LoginPath = "/login"
	}
	if h.MaxUploadBytes <= 0 {
		h.MaxUploadBytes = defaultMaxUploadBytes
	}
}
