package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/ayabeauty/storefront/internal/errors"
)

var errInvalidQuery = errors.New("limit and offset must be integers")

// parseIntQuery returns the integer value of a query param or def when absent.
// ok is false when the parameter is present but not an integer.
func parseIntQuery(r *http.Request, key string, def int) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, true
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def, false
	}
	return i, true
}

// ParseLimitOffset parses common pagination params and clamps to sane bounds.
// - defLimit: default limit when not specified
// - maxLimit: maximum allowed limit (values > maxLimit are clamped to maxLimit).
func ParseLimitOffset(r *http.Request, defLimit, maxLimit int) (int, int, error) {
	if maxLimit < 1 {
		maxLimit = 1
	}

	lim, okLim := parseIntQuery(r, "limit", defLimit)
	off, okOff := parseIntQuery(r, "offset", 0)
	if !okLim || !okOff {
		return 0, 0, errInvalidQuery
	}
	lim = min(max(lim, 1), maxLimit)
	off = max(off, 0)
	return lim, off, nil
}

// statusForCode maps application error codes to HTTP statuses.
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnavailable:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		// 499 Client Closed Request.
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders err as {error, message}. Internal errors are logged and their
// detail is withheld from the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := apperrors.GetCode(err)
	status := statusForCode(code)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}

	msg := apperrors.PublicMessage(err, "internal server error")
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	WriteError(w, ErrorParams{Code: status, ErrCode: string(code), Err: errors.New(msg)})
}
