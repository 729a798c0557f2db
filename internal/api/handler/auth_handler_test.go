package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/middleware"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, sessionID, username, password string) (*ports.Identity, error) {
			if username != "ketoan" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.Identity{SessionID: "sess-1", Role: domain.RoleKeToan, Home: domain.ViewDashboard}, nil
		},
	}
	h := NewAuthHandler(stub, 8*time.Hour, true)

	c, rec := newCtx(http.MethodPost, "/auth/login", `{"username":"ketoan","password":"secret"}`, domain.RoleNone)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp["session_id"])
	assert.Equal(t, "KE_TOAN", resp["role"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.CookieSession, cookies[0].Name)
	assert.Equal(t, "sess-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.Identity, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, rec := newCtx(http.MethodPost, "/auth/login", `{"username":"ketoan"}`, domain.RoleNone)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "password is required")
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.Identity, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, _ := newCtx(http.MethodPost, "/auth/login", `{"username":"a","password":"b"}`, domain.RoleNone)
	err := h.Login(c)
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestAuthHandler_Login_CookieCarriesNewSession(t *testing.T) {
	var previous string
	stub := &stubAuthService{
		loginFn: func(_ context.Context, previousID, _, _ string) (*ports.Identity, error) {
			previous = previousID
			return &ports.Identity{SessionID: "issued", Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, rec := newCtx(http.MethodPost, "/auth/login", `{"username":"a","password":"b"}`, domain.RoleNone)
	c.Request().Header.Set(middleware.HeaderSessionID, "existing")
	require.NoError(t, h.Login(c))
	assert.Equal(t, "existing", previous)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "issued", cookies[0].Value)
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	var loggedOut string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, rec := newCtx(http.MethodPost, "/auth/logout", "", domain.RoleNone)
	c.Request().Header.Set(middleware.HeaderSessionID, "sess-9")
	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "sess-9", loggedOut)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAuthHandler_Logout_WithoutSessionIsNoop(t *testing.T) {
	stub := &stubAuthService{
		logoutFn: func(context.Context, string) error {
			t.Fatal("service should not be called")
			return nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, rec := newCtx(http.MethodPost, "/auth/logout", "", domain.RoleNone)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	stub := &stubAuthService{
		whoAmIFn: func(context.Context, string) (*ports.Identity, error) {
			return nil, domain.ErrUnauthenticated
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, _ := newCtx(http.MethodGet, "/auth/me", "", domain.RoleNone)
	assert.ErrorIs(t, h.Me(c), domain.ErrUnauthenticated)
}
