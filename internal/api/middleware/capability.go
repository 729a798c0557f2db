package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/metrics"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

// RequireCapability enforces capability-based access control. It must run
// after RequireAuth. Denials return domain.ErrForbidden for the central
// error handler to render.
func RequireCapability(capability domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(domain.Role)
			if !role.Has(capability) {
				metrics.CapabilityDenialsTotal.WithLabelValues(string(capability)).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireAction gates a route on the capability behind a UI action.
func RequireAction(action domain.Action) echo.MiddlewareFunc {
	capability, ok := action.RequiredCapability()
	if !ok {
		capability = domain.Capability("unknown:" + string(action))
	}
	return RequireCapability(capability)
}
