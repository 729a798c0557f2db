package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/session"
)

const (
	HeaderSessionID = "X-Session-ID"
	CookieSession   = "condo_session"

	ctxSession = "session"
	ctxActor   = "actor"
)

// Session binds every request to the session named by the X-Session-ID
// header or, failing that, the condo_session cookie. Requests without a
// session ID get an empty, unauthenticated session.
func Session(store ports.CredentialStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ctxSession, session.New(store, SessionID(c)))
			return next(c)
		}
	}
}

// SessionID extracts the session key from the request.
func SessionID(c echo.Context) string {
	if id := strings.TrimSpace(c.Request().Header.Get(HeaderSessionID)); id != "" {
		return id
	}
	if ck, err := c.Cookie(CookieSession); err == nil {
		return strings.TrimSpace(ck.Value)
	}
	return ""
}

// SessionFrom returns the session injected by Session, or nil.
func SessionFrom(c echo.Context) *session.Session {
	s, _ := c.Get(ctxSession).(*session.Session)
	return s
}

// RequireAuth rejects requests whose session holds no usable credential
// and stores the resolved Actor for handlers.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			ctx := c.Request().Context()

			cred, err := sess.Credential(ctx)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			role := session.ResolveRole(cred)
			if role == domain.RoleNone {
				return echo.NewHTTPError(http.StatusUnauthorized, "credential carries no role")
			}

			actor := domain.Actor{SessionID: sess.Key(), Token: cred.Token, Role: role}
			if cred.User != nil {
				actor.Username = cred.User.Username
			}
			c.Set(ctxActor, actor)
			c.Set("role", role)
			return next(c)
		}
	}
}

// ActorFrom returns the Actor stored by RequireAuth.
func ActorFrom(c echo.Context) (domain.Actor, bool) {
	a, ok := c.Get(ctxActor).(domain.Actor)
	return a, ok
}
