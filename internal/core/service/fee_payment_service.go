package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/mapping"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

var _ ports.FeePaymentService = (*FeePaymentService)(nil)

var hundred = decimal.NewFromInt(100)

// FeePaymentService covers the narrow action endpoints and the fee
// collection bookkeeping derived from fees, payments and households.
type FeePaymentService struct {
	backend ports.Backend
	audit   auditor
	log     zerolog.Logger
}

func NewFeePaymentService(backend ports.Backend, audit ports.AuditPublisher, log zerolog.Logger) *FeePaymentService {
	return &FeePaymentService{backend: backend, audit: auditor{pub: audit}, log: log}
}

// ToggleFeeStatus sets the fee's active flag. The body uses the wire key.
func (s *FeePaymentService) ToggleFeeStatus(ctx context.Context, actor domain.Actor, feeID int64, active bool) (mapping.Record, error) {
	if err := authorize(actor, domain.ActionToggleFeeStatus); err != nil {
		return nil, err
	}
	body := map[string]any{mapping.Fee.Wire("active"): active}

	resp, err := s.backend.Do(ctx, http.MethodPatch, itemPath(pathFees, feeID)+"/status", actor.Token, body)
	return s.finish(actor, domain.ActionToggleFeeStatus, mapping.Fee, feeID, resp, err)
}

// VerifyPayment marks a payment as confirmed by the accountant.
func (s *FeePaymentService) VerifyPayment(ctx context.Context, actor domain.Actor, paymentID int64) (mapping.Record, error) {
	if err := authorize(actor, domain.ActionVerifyPayment); err != nil {
		return nil, err
	}
	body := map[string]any{mapping.Payment.Wire("verified"): true}

	resp, err := s.backend.Do(ctx, http.MethodPatch, itemPath(pathPayments, paymentID)+"/verify", actor.Token, body)
	return s.finish(actor, domain.ActionVerifyPayment, mapping.Payment, paymentID, resp, err)
}

func (s *FeePaymentService) ActivateHousehold(ctx context.Context, actor domain.Actor, householdID int64) (mapping.Record, error) {
	if err := authorize(actor, domain.ActionActivateHousehold); err != nil {
		return nil, err
	}
	resp, err := s.backend.Do(ctx, http.MethodPut, itemPath(pathHouseholds, householdID)+"/activate", actor.Token, nil)
	return s.finish(actor, domain.ActionActivateHousehold, mapping.Household, householdID, resp, err)
}

func (s *FeePaymentService) finish(actor domain.Actor, action domain.Action, table *mapping.Table, id int64, resp any, err error) (mapping.Record, error) {
	var rec mapping.Record
	if err == nil {
		rec, err = single(table, resp)
	}
	s.audit.record(actor, action, table.Entity, id, err)
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", action, id, err)
	}
	return rec, nil
}

type ledger struct {
	households []mapping.Record
	fees       []mapping.Record
	payments   []mapping.Record
}

// load fetches the three collections concurrently. Any failure fails the
// whole load.
func (s *FeePaymentService) load(ctx context.Context, token string, withHouseholds bool) (*ledger, error) {
	var l ledger
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		l.fees, err = fetchList(gctx, s.backend, token, pathFees, mapping.Fee)
		return err
	})
	g.Go(func() (err error) {
		l.payments, err = fetchList(gctx, s.backend, token, pathPayments, mapping.Payment)
		return err
	})
	if withHouseholds {
		g.Go(func() (err error) {
			l.households, err = fetchList(gctx, s.backend, token, pathHouseholds, mapping.Household)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &l, nil
}

// FeeSummaries reports, per fee, what was expected and what was collected.
// Only verified payments count as collected.
func (s *FeePaymentService) FeeSummaries(ctx context.Context, actor domain.Actor) ([]domain.FeeSummary, error) {
	if !actor.Role.Has(domain.CapFeeManagement) {
		return nil, domain.ErrForbidden
	}
	l, err := s.load(ctx, actor.Token, true)
	if err != nil {
		return nil, err
	}

	activeHouseholds := 0
	for _, h := range l.households {
		if boolField(h, "active") {
			activeHouseholds++
		}
	}

	byFee := make(map[int64][]mapping.Record)
	for _, p := range l.payments {
		fid := refField(p, "feeId")
		byFee[fid] = append(byFee[fid], p)
	}

	out := make([]domain.FeeSummary, 0, len(l.fees))
	for _, f := range l.fees {
		fid := recordID(f)
		sum := domain.FeeSummary{
			FeeID:  fid,
			Name:   stringField(f, "name"),
			Type:   stringField(f, "type"),
			Active: boolField(f, "active"),
			Amount: decimal.NewFromFloat(floatField(f, "amount")),
		}
		if sum.Type == mapping.FeeMandatory {
			sum.Expected = sum.Amount.Mul(decimal.NewFromInt(int64(activeHouseholds)))
		}

		paying := make(map[int64]bool)
		for _, p := range byFee[fid] {
			sum.Payments++
			if !boolField(p, "verified") {
				continue
			}
			sum.Verified++
			sum.Collected = sum.Collected.Add(decimal.NewFromFloat(floatField(p, "amountPaid")))
			paying[refField(p, "householdId")] = true
		}
		sum.PayingHouses = len(paying)
		sum.Outstanding = decimal.Max(sum.Expected.Sub(sum.Collected), decimal.Zero)
		if sum.Expected.IsPositive() {
			sum.CollectionPct = sum.Collected.Div(sum.Expected).Mul(hundred).Round(2)
		}
		out = append(out, sum)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FeeID < out[j].FeeID })
	return out, nil
}

// HouseholdBalance reports a household's standing against every active
// mandatory fee.
func (s *FeePaymentService) HouseholdBalance(ctx context.Context, actor domain.Actor, householdID int64) (*domain.HouseholdBalance, error) {
	if !actor.Role.Has(domain.CapFeeManagement) && !actor.Role.Has(domain.CapHouseholdManagement) {
		return nil, domain.ErrForbidden
	}
	l, err := s.load(ctx, actor.Token, false)
	if err != nil {
		return nil, err
	}

	paid := make(map[int64]decimal.Decimal)
	bal := &domain.HouseholdBalance{HouseholdID: householdID, Fees: []domain.FeeBalance{}}
	for _, p := range l.payments {
		if refField(p, "householdId") != householdID {
			continue
		}
		if !boolField(p, "verified") {
			bal.Pending++
			continue
		}
		fid := refField(p, "feeId")
		paid[fid] = paid[fid].Add(decimal.NewFromFloat(floatField(p, "amountPaid")))
	}

	for _, f := range l.fees {
		if stringField(f, "type") != mapping.FeeMandatory || !boolField(f, "active") {
			continue
		}
		fid := recordID(f)
		fb := domain.FeeBalance{
			FeeID: fid,
			Name:  stringField(f, "name"),
			Due:   decimal.NewFromFloat(floatField(f, "amount")),
			Paid:  paid[fid],
		}
		fb.Outstanding = decimal.Max(fb.Due.Sub(fb.Paid), decimal.Zero)
		bal.Fees = append(bal.Fees, fb)
		bal.TotalDue = bal.TotalDue.Add(fb.Due)
		bal.TotalPaid = bal.TotalPaid.Add(fb.Paid)
		bal.Outstanding = bal.Outstanding.Add(fb.Outstanding)
	}
	return bal, nil
}
