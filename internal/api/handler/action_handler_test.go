package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

func TestActionHandler_ToggleFeeStatus(t *testing.T) {
	stub := &stubFeePaymentService{}
	h := NewActionHandler(stub)

	c, rec := newCtx(http.MethodPatch, "/v1/fees/5/status", `{"active":false}`, domain.RoleKeToan)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.ToggleFeeStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	active, ok := stub.toggled[5]
	require.True(t, ok)
	assert.False(t, active)
}

func TestActionHandler_ToggleFeeStatus_MissingFlag(t *testing.T) {
	stub := &stubFeePaymentService{}
	h := NewActionHandler(stub)

	c, rec := newCtx(http.MethodPatch, "/v1/fees/5/status", `{}`, domain.RoleKeToan)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.ToggleFeeStatus(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, stub.toggled)
}

func TestActionHandler_VerifyPayment_Forbidden(t *testing.T) {
	h := NewActionHandler(&stubFeePaymentService{err: domain.ErrForbidden})

	c, _ := newCtx(http.MethodPatch, "/v1/payments/9/verify", "", domain.RoleToTruong)
	c.SetParamNames("id")
	c.SetParamValues("9")
	assert.ErrorIs(t, h.VerifyPayment(c), domain.ErrForbidden)
}

func TestActionHandler_HouseholdBalance(t *testing.T) {
	h := NewActionHandler(&stubFeePaymentService{})

	c, rec := newCtx(http.MethodGet, "/v1/households/4/balance", "", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, h.HouseholdBalance(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"householdId":4`)
}

type stubDashboard struct{ summary *domain.DashboardSummary }

func (s stubDashboard) Summary(context.Context, domain.Actor) (*domain.DashboardSummary, error) {
	return s.summary, nil
}

type stubAuditReader struct {
	entity string
	limit  int
}

func (s *stubAuditReader) Recent(_ context.Context, entity string, limit int) ([]domain.AuditEntry, error) {
	s.entity, s.limit = entity, limit
	return []domain.AuditEntry{}, nil
}

func TestDashboardHandler_Summary(t *testing.T) {
	h := NewDashboardHandler(stubDashboard{summary: &domain.DashboardSummary{Role: domain.RoleKeToan, Fees: &domain.FeeStats{Fees: 3}}})

	c, rec := newCtx(http.MethodGet, "/v1/dashboard/summary", "", domain.RoleKeToan)
	require.NoError(t, h.Summary(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"KE_TOAN"`)
	assert.Contains(t, rec.Body.String(), `"fees":{"fees":3`)
	assert.NotContains(t, rec.Body.String(), `"households"`)
}

func TestAuditHandler_Recent_ClampsLimit(t *testing.T) {
	reader := &stubAuditReader{}
	h := NewAuditHandler(reader)

	c, rec := newCtx(http.MethodGet, "/v1/audit?entity=fee&limit=1000", "", domain.RoleAdmin)
	require.NoError(t, h.Recent(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fee", reader.entity)
	assert.Equal(t, maxAuditLimit, reader.limit)
}

func TestAuditHandler_Recent_BadLimit(t *testing.T) {
	h := NewAuditHandler(&stubAuditReader{})

	c, rec := newCtx(http.MethodGet, "/v1/audit?limit=zero", "", domain.RoleAdmin)
	require.NoError(t, h.Recent(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
