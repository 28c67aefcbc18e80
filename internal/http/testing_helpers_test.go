package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domainauth "github.com/ayabeauty/storefront/internal/domain/auth"
	mockauth "github.com/ayabeauty/storefront/internal/mocks/auth"
	"github.com/ayabeauty/storefront/internal/ports"
	"github.com/ayabeauty/storefront/internal/service"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "secret123"

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func newTestAuth(t *testing.T, tokens ports.TokenStore, limiter ports.LoginLimiter) *service.AuthService {
	t.Helper()
	svc, err := service.NewAuthService(service.AuthServiceOptions{
		Tokens: tokens,
		Policy: service.LoginPolicy{Secret: testPassword, BcryptCost: bcrypt.MinCost, Limiter: limiter},
		Logger: discardLogger(),
	})
	require.NoError(t, err)
	return svc
}

type sessionFixture struct {
	tokens   *mockauth.FakeTokenStore
	handlers *SessionHandlers
}

func newSessionFixture(t *testing.T) sessionFixture {
	t.Helper()
	tokens := mockauth.NewFakeTokenStore()
	tokens.TTL = domainauth.DefaultSessionTTL
	return sessionFixture{
		tokens: tokens,
		handlers: &SessionHandlers{
			Svc:     newTestAuth(t, tokens, nil),
			Cookies: NewSessionCookies(SessionCookieOptions{}),
			Logger:  discardLogger(),
		},
	}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withSessionCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: token})
	return req
}

// checkerFunc adapts a function to SessionChecker. Valid tokens resolve to a one hour session.
type checkerFunc func(ctx context.Context, token string) bool

func (f checkerFunc) Check(ctx context.Context, token string) bool { return f(ctx, token) }

func (f checkerFunc) Session(ctx context.Context, token string) (*domainauth.Session, error) {
	if !f(ctx, token) {
		return nil, domainauth.ErrSessionNotFound
	}
	return &domainauth.Session{Token: token, IssuedAt: testIssuedAt, ExpiresAt: testIssuedAt.Add(time.Hour)}, nil
}

var testIssuedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
