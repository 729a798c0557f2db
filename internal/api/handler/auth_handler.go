package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/middleware"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookieTTL   time.Duration
	secure      bool
}

// NewAuthHandler builds the auth endpoints. cookieTTL bounds the session
// cookie; secure marks it HTTPS-only.
func NewAuthHandler(authService ports.AuthService, cookieTTL time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL, secure: secure}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates against the backend and opens a gateway session.
// The session ID is always newly issued; one presented by the client is
// only revoked.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.Identity
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	id, err := h.authService.Login(c.Request().Context(), middleware.SessionID(c), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieSession,
		Value:    id.SessionID,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, id)
}

// Logout clears the session's credential.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if id := middleware.SessionID(c); id != "" {
		if err := h.authService.Logout(c.Request().Context(), id); err != nil {
			return err
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieSession,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
	})
	return c.NoContent(http.StatusNoContent)
}

// Me describes the current session.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Session ID (or condo_session cookie)"
// @Success      200           {object}  ports.Identity
// @Failure      401           {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := h.authService.WhoAmI(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, id)
}
