package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

func TestDashboardSummary(t *testing.T) {
	be := ledgerBackend().respond("GET", "/persons", []any{map[string]any{}, map[string]any{}, "skip"})
	svc := NewDashboardService(be, zerolog.Nop())

	sum, err := svc.Summary(context.Background(), actorFor(domain.RoleAdmin))
	require.NoError(t, err)

	require.NotNil(t, sum.Households)
	assert.Equal(t, 3, sum.Households.Total)
	assert.Equal(t, 2, sum.Households.Active)
	require.NotNil(t, sum.Households.Persons)
	assert.Equal(t, 2, *sum.Households.Persons)

	require.NotNil(t, sum.Fees)
	assert.Equal(t, 3, sum.Fees.Fees)
	assert.Equal(t, 2, sum.Fees.ActiveFees)
	assert.Equal(t, 2, sum.Fees.MandatoryFees)
	assert.Equal(t, 3, sum.Fees.VerifiedPayments)
	assert.Equal(t, 1, sum.Fees.PendingPayments)
	assert.True(t, sum.Fees.Collected.Equal(decimal.RequireFromString("70000.1")), sum.Fees.Collected.String())
	assert.True(t, sum.Fees.Pending.Equal(decimal.RequireFromString("0.05")))
}

func TestDashboardSummary_AccountantSkipsPersons(t *testing.T) {
	be := ledgerBackend()
	sum, err := NewDashboardService(be, zerolog.Nop()).Summary(context.Background(), actorFor(domain.RoleKeToan))
	require.NoError(t, err)
	require.NotNil(t, sum.Households)
	assert.Nil(t, sum.Households.Persons)
	require.NotNil(t, sum.Fees)
	for _, c := range be.calls {
		assert.NotEqual(t, "/persons", c.path)
	}
}

func TestDashboardSummary_LeaderSeesNoMoney(t *testing.T) {
	be := ledgerBackend().respond("GET", "/persons", []any{map[string]any{}})
	sum, err := NewDashboardService(be, zerolog.Nop()).Summary(context.Background(), actorFor(domain.RoleToTruong))
	require.NoError(t, err)
	assert.Nil(t, sum.Fees)
	require.NotNil(t, sum.Households)
	for _, c := range be.calls {
		assert.NotContains(t, []string{"/fees", "/payments"}, c.path)
	}
}

func TestDashboardSummary_ResidentFetchesNothing(t *testing.T) {
	be := ledgerBackend()
	sum, err := NewDashboardService(be, zerolog.Nop()).Summary(context.Background(), actorFor(domain.RoleUser))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, sum.Role)
	assert.Nil(t, sum.Households)
	assert.Nil(t, sum.Fees)
	assert.Empty(t, be.calls)
}

func TestDashboardSummary_OneFailureFailsAll(t *testing.T) {
	be := ledgerBackend().on("GET", "/fees", func(any) (any, error) { return nil, domain.ErrBackendUnavailable })
	sum, err := NewDashboardService(be, zerolog.Nop()).Summary(context.Background(), actorFor(domain.RoleKeToan))
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Nil(t, sum)
}

func TestDashboardSummary_RequiresRole(t *testing.T) {
	_, err := NewDashboardService(newStubBackend(), zerolog.Nop()).Summary(context.Background(), domain.Actor{Token: "t"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
