package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/metrics"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

const HeaderIdempotencyKey = "Idempotency-Key"

// Idempotency rejects a replayed Idempotency-Key with 409. Keys are scoped
// to the session and route. A request that fails releases its key. When the
// guard itself is unreachable the request proceeds unguarded.
func Idempotency(guard ports.IdempotencyGuard, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
			if key == "" || guard == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			scoped := SessionID(c) + ":" + c.Request().Method + ":" + c.Path() + ":" + key
			claimed, err := guard.Claim(ctx, scoped)
			if err != nil {
				log.Warn().Err(err).Msg("idempotency guard unavailable")
				return next(c)
			}
			if !claimed {
				metrics.IdempotentReplaysTotal.Inc()
				return echo.NewHTTPError(http.StatusConflict, domain.ErrDuplicateRequest.Error())
			}

			err = next(c)
			if err != nil || c.Response().Status >= http.StatusBadRequest {
				if relErr := guard.Release(ctx, scoped); relErr != nil {
					log.Warn().Err(relErr).Msg("idempotency release failed")
				}
			}
			return err
		}
	}
}
