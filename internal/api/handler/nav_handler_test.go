package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/middleware"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/access"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/session"
)

// sessionCtx runs the Session middleware against a memory store seeded
// with cred (nil means no credential) and hands back the resulting context.
func sessionCtx(t *testing.T, target string, cred *domain.Credential) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	store := session.NewMemoryStore()
	if cred != nil {
		require.NoError(t, store.Save(context.Background(), "s1", cred))
	}
	c, rec := newCtx(http.MethodGet, target, "", domain.RoleNone)
	c.Request().Header.Set(middleware.HeaderSessionID, "s1")
	require.NoError(t, middleware.Session(store)(func(echo.Context) error { return nil })(c))
	return c, rec
}

func TestNavHandler_Navigate(t *testing.T) {
	cases := []struct {
		name    string
		cred    *domain.Credential
		view    string
		outcome access.Outcome
		landed  domain.View
	}{
		{"anonymous bounced to login", nil, "fees", access.OutcomeLogin, domain.ViewLogin},
		{"accountant renders fees", credFor("KE_TOAN"), "fees", access.OutcomeRender, domain.ViewFees},
		{"accountant redirected from households", credFor("KE_TOAN"), "households", access.OutcomeRedirect, domain.ViewFees},
		{"leader renders households", credFor("ROLE_TO_TRUONG"), "households", access.OutcomeRender, domain.ViewHouseholds},
		{"user cannot open users", credFor("USER"), "users", access.OutcomeRedirect, domain.ViewDashboard},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen []access.Decision
			h := NewNavHandler(access.NewGuard(func(d access.Decision) { seen = append(seen, d) }))

			c, rec := sessionCtx(t, "/nav/"+tc.view, tc.cred)
			c.SetParamNames("view")
			c.SetParamValues(tc.view)
			require.NoError(t, h.Navigate(c))

			assert.Equal(t, http.StatusOK, rec.Code)
			var d access.Decision
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
			assert.Equal(t, tc.outcome, d.Outcome)
			assert.Equal(t, tc.landed, d.View)
			assert.Len(t, seen, 1)
		})
	}
}

func TestNavHandler_Menu(t *testing.T) {
	h := NewNavHandler(access.NewGuard(nil))

	c, rec := sessionCtx(t, "/nav", credFor("TO_TRUONG"))
	require.NoError(t, h.Menu(c))

	var resp menuResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	assert.Equal(t, domain.ViewHouseholds, resp.Home)
	assert.Equal(t, []domain.View{
		domain.ViewDashboard,
		domain.ViewHouseholds,
		domain.ViewPersons,
		domain.ViewTemporaryResidence,
	}, resp.Views)
	assert.Contains(t, resp.Actions, domain.ActionActivateHousehold)
	assert.NotContains(t, resp.Actions, domain.ActionVerifyPayment)
}

func TestNavHandler_Menu_Anonymous(t *testing.T) {
	h := NewNavHandler(access.NewGuard(nil))

	c, rec := sessionCtx(t, "/nav", nil)
	require.NoError(t, h.Menu(c))

	var resp menuResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)
	assert.Equal(t, domain.ViewLogin, resp.Home)
	assert.Empty(t, resp.Views)
	assert.Empty(t, resp.Actions)
}

func credFor(role string) *domain.Credential {
	return &domain.Credential{Token: "tok", User: &domain.User{Username: "u", RawRole: role}}
}
