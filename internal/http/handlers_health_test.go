package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandlerGET(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	healthHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthHandlerHEAD(t *testing.T) {
	req := httptest.NewRequest(http.MethodHead, "/healthz", nil)
	rec := httptest.NewRecorder()

	healthHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len(), "HEAD has no body")
}

func TestReadyHandler(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("all checks pass", func(t *testing.T) {
		h := readyHandler(map[string]ReadinessCheck{
			"db": func(context.Context) error { return nil },
		}, logger)
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ready":true,"checks":{"db":"ok"}}`, rec.Body.String())
	})

	t.Run("a failing check returns 503", func(t *testing.T) {
		h := readyHandler(map[string]ReadinessCheck{
			"db":    func(context.Context) error { return nil },
			"redis": func(context.Context) error { return errors.New("connection refused") },
		}, logger)
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"ready":false,"checks":{"db":"ok","redis":"unavailable"}}`, rec.Body.String())
	})
}
