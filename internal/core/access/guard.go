// Package access decides, per navigation, whether a view renders, redirects
// to the role's home, or bounces to login.
package access

import (
	"context"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

// Outcome of a navigation request.
type Outcome string

const (
	OutcomeRender   Outcome = "render"
	OutcomeRedirect Outcome = "redirect"
	OutcomeLogin    Outcome = "login"
)

// Decision is the result of evaluating one navigation. View is the view
// that ends up on screen.
type Decision struct {
	Outcome Outcome     `json:"outcome"`
	View    domain.View `json:"view"`
}

// RoleSource is what the guard needs from a session.
type RoleSource interface {
	Authenticated(ctx context.Context) bool
	Role(ctx context.Context) domain.Role
}

// routes maps each protected view to the capability it requires. Login and
// home are handled before the table is consulted.
var routes = map[domain.View]domain.Capability{
	domain.ViewDashboard:          domain.CapAuthenticated,
	domain.ViewHouseholds:         domain.CapHouseholdManagement,
	domain.ViewHouseholdDetail:    domain.CapHouseholdManagement,
	domain.ViewPersons:            domain.CapHouseholdManagement,
	domain.ViewTemporaryResidence: domain.CapHouseholdManagement,
	domain.ViewFees:               domain.CapFeeManagement,
	domain.ViewPayments:           domain.CapFeeManagement,
	domain.ViewStatistics:         domain.CapFeeManagement,
	domain.ViewVehicles:           domain.CapFeeManagement,
	domain.ViewUtilityServices:    domain.CapFeeManagement,
	domain.ViewUsers:              domain.CapAdmin,
}

// menuOrder is the navigation order of views in Menu.
var menuOrder = []domain.View{
	domain.ViewDashboard,
	domain.ViewHouseholds,
	domain.ViewPersons,
	domain.ViewTemporaryResidence,
	domain.ViewFees,
	domain.ViewPayments,
	domain.ViewVehicles,
	domain.ViewUtilityServices,
	domain.ViewStatistics,
	domain.ViewUsers,
}

// HomeFor returns the landing view of a role.
func HomeFor(r domain.Role) domain.View {
	switch {
	case r.IsToTruong():
		return domain.ViewHouseholds
	case r.IsKeToan():
		return domain.ViewFees
	default:
		return domain.ViewDashboard
	}
}

// RequiredCapability returns the capability gating view, if it is a known
// protected view.
func RequiredCapability(view domain.View) (domain.Capability, bool) {
	c, ok := routes[view]
	return c, ok
}

// Decide is the pure transition function behind Guard.Navigate. A
// credential whose role cannot be resolved is treated as no credential.
func Decide(authenticated bool, role domain.Role, view domain.View) Decision {
	if !authenticated || role == domain.RoleNone {
		if view == domain.ViewLogin {
			return Decision{Outcome: OutcomeRender, View: domain.ViewLogin}
		}
		return Decision{Outcome: OutcomeLogin, View: domain.ViewLogin}
	}

	home := HomeFor(role)
	if view == domain.ViewLogin || view == domain.ViewHome {
		return Decision{Outcome: OutcomeRedirect, View: home}
	}

	required, ok := routes[view]
	if ok && role.Has(required) {
		return Decision{Outcome: OutcomeRender, View: view}
	}
	return Decision{Outcome: OutcomeRedirect, View: home}
}

// Menu lists the views reachable by role, in navigation order.
func Menu(role domain.Role) []domain.View {
	out := make([]domain.View, 0, len(menuOrder))
	for _, v := range menuOrder {
		if role.Has(routes[v]) {
			out = append(out, v)
		}
	}
	return out
}

// Guard evaluates navigations against a live session.
type Guard struct {
	observe func(Decision)
}

// NewGuard returns a Guard. observe, when non-nil, sees every decision.
func NewGuard(observe func(Decision)) *Guard {
	return &Guard{observe: observe}
}

// Navigate re-reads src on every call; nothing is cached between
// navigations.
func (g *Guard) Navigate(ctx context.Context, src RoleSource, view domain.View) Decision {
	authenticated := src != nil && src.Authenticated(ctx)
	role := domain.RoleNone
	if authenticated {
		role = src.Role(ctx)
	}
	d := Decide(authenticated, role, view)
	if g != nil && g.observe != nil {
		g.observe(d)
	}
	return d
}
