package ports

import (
	"context"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/mapping"
)

// Identity describes an authenticated session.
type Identity struct {
	SessionID    string              `json:"session_id"`
	User         *domain.User        `json:"user,omitempty"`
	Role         domain.Role         `json:"role"`
	Home         domain.View         `json:"home"`
	Capabilities []domain.Capability `json:"capabilities"`
	Actions      []domain.Action     `json:"actions"`
}

type AuthService interface {
	// Login authenticates against the backend and stores the credential
	// under a newly issued session ID. Any credential still held under
	// previousID is revoked.
	Login(ctx context.Context, previousID, username, password string) (*Identity, error)
	Logout(ctx context.Context, sessionID string) error
	WhoAmI(ctx context.Context, sessionID string) (*Identity, error)
}

// ResourceService is CRUD over one backend collection, canonical in and out.
// Update takes only the fields to change.
type ResourceService interface {
	List(ctx context.Context, actor domain.Actor, resource string) ([]mapping.Record, error)
	Get(ctx context.Context, actor domain.Actor, resource string, id int64) (mapping.Record, error)
	Create(ctx context.Context, actor domain.Actor, resource string, rec mapping.Record) (mapping.Record, error)
	Update(ctx context.Context, actor domain.Actor, resource string, id int64, rec mapping.Record) (mapping.Record, error)
	Delete(ctx context.Context, actor domain.Actor, resource string, id int64) error
}

type FeePaymentService interface {
	ToggleFeeStatus(ctx context.Context, actor domain.Actor, feeID int64, active bool) (mapping.Record, error)
	VerifyPayment(ctx context.Context, actor domain.Actor, paymentID int64) (mapping.Record, error)
	ActivateHousehold(ctx context.Context, actor domain.Actor, householdID int64) (mapping.Record, error)
	FeeSummaries(ctx context.Context, actor domain.Actor) ([]domain.FeeSummary, error)
	HouseholdBalance(ctx context.Context, actor domain.Actor, householdID int64) (*domain.HouseholdBalance, error)
}

type DashboardService interface {
	Summary(ctx context.Context, actor domain.Actor) (*domain.DashboardSummary, error)
}
