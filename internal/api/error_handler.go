package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/infrastructure/backend"
)

// FallbackMessage is shown when the backend gave no usable explanation.
const FallbackMessage = "Đã xảy ra lỗi, vui lòng thử lại"

// errorResponse is the canonical error envelope for all API errors.
// Retryable marks failed loads the client may simply re-issue.
type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors and backend answers to HTTP status codes.
//   - Surfaces the backend's own message when it sent one.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		resp := errorResponse{Error: msg}
		if c.Request().Method == http.MethodGet && retryable(code) {
			resp.Retryable = true
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func retryable(code int) bool {
	return code == http.StatusBadGateway || code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware 401s).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return backendStatus(apiErr.Status), messageOr(apiErr.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrDuplicateRequest):
		return http.StatusConflict, "duplicate request"
	case errors.Is(err, domain.ErrUnexpectedShape):
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend returned unexpected shape")
		return http.StatusBadGateway, FallbackMessage
	case errors.Is(err, domain.ErrBackendUnavailable):
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend unavailable")
		return http.StatusServiceUnavailable, FallbackMessage
	}

	// Unexpected error: log the real cause, return the generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, FallbackMessage
}

// backendStatus passes client errors through and reports backend failures
// as a bad gateway.
func backendStatus(status int) int {
	if status >= 400 && status < 500 {
		return status
	}
	return http.StatusBadGateway
}

func messageOr(msg string) string {
	if msg == "" {
		return FallbackMessage
	}
	return msg
}
