package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/ayabeauty/storefront/internal/domain/auth"
	"github.com/ayabeauty/storefront/internal/service"
)

// SessionChecker resolves admin session tokens.
type SessionChecker interface {
	Check(ctx context.Context, token string) bool
	Session(ctx context.Context, token string) (*domainauth.Session, error)
}

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	SessionChecker
	Login(ctx context.Context, input service.LoginInput) (*service.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

// SessionHandlers serves the admin session probe, login and logout endpoints.
type SessionHandlers struct {
	Svc        AuthServiceInterface
	Cookies    *SessionCookies
	TrustProxy bool
	Logger     *slog.Logger
}

func (h *SessionHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Password string `json:"password"`
}

// Check reports whether the request carries a valid session cookie.
// GET /admin/session/check.
func (h *SessionHandlers) Check(w http.ResponseWriter, r *http.Request) {
	if h.Svc.Check(r.Context(), h.Cookies.Token(r)) {
		writeOK(w, http.StatusOK, true, "")
		return
	}
	writeOK(w, http.StatusUnauthorized, false, "")
}

// Login verifies the password and sets the session cookie.
// POST /admin/session/login.
func (h *SessionHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req, false); err != nil {
		writeOK(w, http.StatusBadRequest, false, "invalid request")
		return
	}

	result, err := h.Svc.Login(r.Context(), service.LoginInput{
		Password:  req.Password,
		ClientKey: ClientIP(r, h.TrustProxy),
	})
	if err != nil {
		h.writeLoginError(w, r, err)
		return
	}

	h.Cookies.SetSession(w, result.Session)
	writeOK(w, http.StatusOK, true, "")
}

func (h *SessionHandlers) writeLoginError(w http.ResponseWriter, r *http.Request, err error) {
	var tooMany *service.TooManyAttemptsError
	switch {
	case errors.As(err, &tooMany):
		w.Header().Set("Retry-After", formatRetryAfter(tooMany.RetryAfter))
		writeOK(w, http.StatusTooManyRequests, false, "too many attempts")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeOK(w, http.StatusUnauthorized, false, "")
	case errors.Is(err, context.Canceled):
		// Client went away during the failure delay.
		return
	default:
		h.logger().ErrorContext(r.Context(), "admin login failed", "error", err)
		writeOK(w, http.StatusInternalServerError, false, "internal error")
	}
}

// Logout revokes the session, if any, and clears the cookie. It always succeeds.
// POST /admin/session/logout.
func (h *SessionHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if token := h.Cookies.Token(r); token != "" {
		if err := h.Svc.Logout(r.Context(), token); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	h.Cookies.Clear(w)
	writeOK(w, http.StatusOK, true, "")
}
