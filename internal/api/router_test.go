package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/middleware"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/mapping"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/session"
)

type fakeResources struct{ created int }

func (f *fakeResources) List(context.Context, domain.Actor, string) ([]mapping.Record, error) {
	return []mapping.Record{}, nil
}

func (f *fakeResources) Get(_ context.Context, _ domain.Actor, _ string, id int64) (mapping.Record, error) {
	return mapping.Record{"id": id}, nil
}

func (f *fakeResources) Create(_ context.Context, _ domain.Actor, _ string, rec mapping.Record) (mapping.Record, error) {
	f.created++
	return rec, nil
}

func (f *fakeResources) Update(_ context.Context, _ domain.Actor, _ string, _ int64, rec mapping.Record) (mapping.Record, error) {
	return rec, nil
}

func (f *fakeResources) Delete(context.Context, domain.Actor, string, int64) error { return nil }

type fakeFees struct{}

func (fakeFees) ToggleFeeStatus(_ context.Context, _ domain.Actor, id int64, active bool) (mapping.Record, error) {
	return mapping.Record{"id": id, "active": active}, nil
}

func (fakeFees) VerifyPayment(_ context.Context, _ domain.Actor, id int64) (mapping.Record, error) {
	return mapping.Record{"id": id}, nil
}

func (fakeFees) ActivateHousehold(_ context.Context, _ domain.Actor, id int64) (mapping.Record, error) {
	return mapping.Record{"id": id}, nil
}

func (fakeFees) FeeSummaries(context.Context, domain.Actor) ([]domain.FeeSummary, error) {
	return []domain.FeeSummary{}, nil
}

func (fakeFees) HouseholdBalance(_ context.Context, _ domain.Actor, id int64) (*domain.HouseholdBalance, error) {
	return &domain.HouseholdBalance{HouseholdID: id}, nil
}

type fakeDashboard struct{}

func (fakeDashboard) Summary(_ context.Context, a domain.Actor) (*domain.DashboardSummary, error) {
	return &domain.DashboardSummary{Role: a.Role}, nil
}

type fakeAuth struct{}

func (fakeAuth) Login(context.Context, string, string, string) (*ports.Identity, error) {
	return nil, domain.ErrInvalidCredentials
}
func (fakeAuth) Logout(context.Context, string) error { return nil }
func (fakeAuth) WhoAmI(context.Context, string) (*ports.Identity, error) {
	return nil, domain.ErrUnauthenticated
}

type onceGuard struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (g *onceGuard) Claim(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seen[key] {
		return false, nil
	}
	g.seen[key] = true
	return true, nil
}

func (g *onceGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.seen, key)
	return nil
}

func newTestRouter(t *testing.T) (*echo.Echo, *fakeResources) {
	t.Helper()
	store := session.NewMemoryStore()
	ctx := context.Background()
	for id, role := range map[string]string{"admin": "ADMIN", "leader": "TO_TRUONG", "accountant": "ROLE_KE_TOAN", "resident": "USER"} {
		require.NoError(t, store.Save(ctx, id, &domain.Credential{Token: "tok-" + id, User: &domain.User{Username: id, RawRole: role}}))
	}
	res := &fakeResources{}
	e := NewRouter(Deps{
		Log:         zerolog.Nop(),
		Store:       store,
		Idempotency: &onceGuard{seen: map[string]bool{}},
		Auth:        fakeAuth{},
		Resources:   res,
		FeePayments: fakeFees{},
		Dashboard:   fakeDashboard{},
		SessionTTL:  time.Hour,
		Registry:    prometheus.NewRegistry(),
	})
	return e, res
}

func do(e *echo.Echo, method, path, sessionID, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if sessionID != "" {
		req.Header.Set(middleware.HeaderSessionID, sessionID)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Access(t *testing.T) {
	e, _ := newTestRouter(t)

	cases := []struct {
		name    string
		method  string
		path    string
		session string
		body    string
		code    int
	}{
		{"health is public", http.MethodGet, "/health", "", "", http.StatusOK},
		{"no session", http.MethodGet, "/v1/fees", "", "", http.StatusUnauthorized},
		{"unknown session", http.MethodGet, "/v1/fees", "ghost", "", http.StatusUnauthorized},
		{"accountant lists fees", http.MethodGet, "/v1/fees", "accountant", "", http.StatusOK},
		{"leader cannot list fees", http.MethodGet, "/v1/fees", "leader", "", http.StatusForbidden},
		{"leader lists households", http.MethodGet, "/v1/households", "leader", "", http.StatusOK},
		{"accountant cannot delete household", http.MethodDelete, "/v1/households/1", "accountant", "", http.StatusForbidden},
		{"leader deletes household", http.MethodDelete, "/v1/households/1", "leader", "", http.StatusNoContent},
		{"resident sees dashboard", http.MethodGet, "/v1/dashboard/summary", "resident", "", http.StatusOK},
		{"resident cannot list vehicles", http.MethodGet, "/v1/vehicles", "resident", "", http.StatusForbidden},
		{"leader cannot verify payment", http.MethodPatch, "/v1/payments/3/verify", "leader", "", http.StatusForbidden},
		{"accountant verifies payment", http.MethodPatch, "/v1/payments/3/verify", "accountant", "", http.StatusOK},
		{"fee summary is static route", http.MethodGet, "/v1/fees/summary", "admin", "", http.StatusOK},
		{"toggle fee status", http.MethodPatch, "/v1/fees/2/status", "admin", `{"active":true}`, http.StatusOK},
		{"balance for accountant", http.MethodGet, "/v1/households/4/balance", "accountant", "", http.StatusOK},
		{"bad id", http.MethodGet, "/v1/persons/x", "leader", "", http.StatusBadRequest},
		{"login failure", http.MethodPost, "/auth/login", "", `{"username":"a","password":"b"}`, http.StatusUnauthorized},
		{"navigation never errors", http.MethodGet, "/nav/users", "", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, tc.method, tc.path, tc.session, tc.body)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_IdempotentCreate(t *testing.T) {
	e, res := newTestRouter(t)
	body := `{"licensePlate":"29B-00001"}`

	first := do(e, http.MethodPost, "/v1/vehicles", "accountant", body, middleware.HeaderIdempotencyKey, "k1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	replay := do(e, http.MethodPost, "/v1/vehicles", "accountant", body, middleware.HeaderIdempotencyKey, "k1")
	assert.Equal(t, http.StatusConflict, replay.Code)
	assert.Equal(t, 1, res.created)
}

func TestRouter_ForbiddenCreateDoesNotClaimKey(t *testing.T) {
	e, res := newTestRouter(t)
	body := `{"licensePlate":"29B-00001"}`

	denied := do(e, http.MethodPost, "/v1/vehicles", "leader", body, middleware.HeaderIdempotencyKey, "k2")
	require.Equal(t, http.StatusForbidden, denied.Code)
	assert.JSONEq(t, `{"error":"access forbidden"}`, denied.Body.String())

	assert.Equal(t, 0, res.created)
}

func TestRouter_AuditRouteOnlyWhenConfigured(t *testing.T) {
	e, _ := newTestRouter(t)
	rec := do(e, http.MethodGet, "/v1/audit", "admin", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
