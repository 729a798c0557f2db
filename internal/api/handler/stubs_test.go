package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/mapping"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, sessionID, username, password string) (*ports.Identity, error)
	logoutFn func(ctx context.Context, sessionID string) error
	whoAmIFn func(ctx context.Context, sessionID string) (*ports.Identity, error)
}

func (s *stubAuthService) Login(ctx context.Context, sessionID, username, password string) (*ports.Identity, error) {
	return s.loginFn(ctx, sessionID, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

func (s *stubAuthService) WhoAmI(ctx context.Context, sessionID string) (*ports.Identity, error) {
	return s.whoAmIFn(ctx, sessionID)
}

type stubResourceService struct {
	listFn   func(resource string) ([]mapping.Record, error)
	getFn    func(resource string, id int64) (mapping.Record, error)
	createFn func(resource string, rec mapping.Record) (mapping.Record, error)
	updateFn func(resource string, id int64, rec mapping.Record) (mapping.Record, error)
	deleteFn func(resource string, id int64) error
}

func (s *stubResourceService) List(_ context.Context, _ domain.Actor, resource string) ([]mapping.Record, error) {
	return s.listFn(resource)
}

func (s *stubResourceService) Get(_ context.Context, _ domain.Actor, resource string, id int64) (mapping.Record, error) {
	return s.getFn(resource, id)
}

func (s *stubResourceService) Create(_ context.Context, _ domain.Actor, resource string, rec mapping.Record) (mapping.Record, error) {
	return s.createFn(resource, rec)
}

func (s *stubResourceService) Update(_ context.Context, _ domain.Actor, resource string, id int64, rec mapping.Record) (mapping.Record, error) {
	return s.updateFn(resource, id, rec)
}

func (s *stubResourceService) Delete(_ context.Context, _ domain.Actor, resource string, id int64) error {
	return s.deleteFn(resource, id)
}

type stubFeePaymentService struct {
	toggled  map[int64]bool
	verified []int64
	err      error
}

func (s *stubFeePaymentService) ToggleFeeStatus(_ context.Context, _ domain.Actor, feeID int64, active bool) (mapping.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.toggled == nil {
		s.toggled = map[int64]bool{}
	}
	s.toggled[feeID] = active
	return mapping.Record{"id": feeID, "active": active}, nil
}

func (s *stubFeePaymentService) VerifyPayment(_ context.Context, _ domain.Actor, paymentID int64) (mapping.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.verified = append(s.verified, paymentID)
	return mapping.Record{"id": paymentID, "verified": true}, nil
}

func (s *stubFeePaymentService) ActivateHousehold(_ context.Context, _ domain.Actor, householdID int64) (mapping.Record, error) {
	return mapping.Record{"id": householdID, "active": true}, s.err
}

func (s *stubFeePaymentService) FeeSummaries(context.Context, domain.Actor) ([]domain.FeeSummary, error) {
	return []domain.FeeSummary{{FeeID: 1, Name: "Phí vệ sinh"}}, s.err
}

func (s *stubFeePaymentService) HouseholdBalance(_ context.Context, _ domain.Actor, householdID int64) (*domain.HouseholdBalance, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.HouseholdBalance{HouseholdID: householdID}, nil
}

// newCtx builds a context with the validator installed and, when role is
// not RoleNone, an authenticated actor.
func newCtx(method, target, body string, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != domain.RoleNone {
		c.Set("actor", domain.Actor{SessionID: "s1", Token: "tok", Username: "u", Role: role})
		c.Set("role", role)
	}
	return c, rec
}
