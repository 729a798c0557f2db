package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/mapping"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

var _ ports.DashboardService = (*DashboardService)(nil)

// DashboardService builds the landing statistics. Only the collections the
// role may see are fetched. They are fetched concurrently and the statistics
// are computed once every fetch has returned; one failure fails the summary.
type DashboardService struct {
	backend ports.Backend
	log     zerolog.Logger
}

func NewDashboardService(backend ports.Backend, log zerolog.Logger) *DashboardService {
	return &DashboardService{backend: backend, log: log}
}

func (s *DashboardService) Summary(ctx context.Context, actor domain.Actor) (*domain.DashboardSummary, error) {
	if actor.Token == "" || actor.Role == domain.RoleNone {
		return nil, domain.ErrUnauthenticated
	}

	var households, fees, payments, persons []mapping.Record
	withPersons := actor.Role.Has(domain.CapHouseholdManagement)
	withFees := actor.Role.Has(domain.CapFeeManagement)
	withHouseholds := withPersons || withFees

	g, gctx := errgroup.WithContext(ctx)
	if withHouseholds {
		g.Go(func() (err error) {
			households, err = fetchList(gctx, s.backend, actor.Token, pathHouseholds, mapping.Household)
			return err
		})
	}
	if withPersons {
		g.Go(func() (err error) {
			persons, err = fetchList(gctx, s.backend, actor.Token, pathPersons, mapping.Person)
			return err
		})
	}
	if withFees {
		g.Go(func() (err error) {
			fees, err = fetchList(gctx, s.backend, actor.Token, pathFees, mapping.Fee)
			return err
		})
		g.Go(func() (err error) {
			payments, err = fetchList(gctx, s.backend, actor.Token, pathPayments, mapping.Payment)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Str("role", actor.Role.String()).Msg("dashboard summary failed")
		return nil, err
	}

	sum := &domain.DashboardSummary{Role: actor.Role}
	if withHouseholds {
		sum.Households = householdStats(households, persons, withPersons)
	}
	if withFees {
		sum.Fees = feeStats(fees, payments)
	}
	return sum, nil
}

func householdStats(households, persons []mapping.Record, withPersons bool) *domain.HouseholdStats {
	st := &domain.HouseholdStats{Total: len(households)}
	for _, h := range households {
		if boolField(h, "active") {
			st.Active++
		}
	}
	if withPersons {
		n := len(persons)
		st.Persons = &n
	}
	return st
}

func feeStats(fees, payments []mapping.Record) *domain.FeeStats {
	st := &domain.FeeStats{Fees: len(fees), Payments: len(payments)}
	for _, f := range fees {
		if boolField(f, "active") {
			st.ActiveFees++
		}
		if stringField(f, "type") == mapping.FeeMandatory {
			st.MandatoryFees++
		}
	}
	for _, p := range payments {
		amount := decimal.NewFromFloat(floatField(p, "amountPaid"))
		if boolField(p, "verified") {
			st.VerifiedPayments++
			st.Collected = st.Collected.Add(amount)
		} else {
			st.PendingPayments++
			st.Pending = st.Pending.Add(amount)
		}
	}
	return st
}
