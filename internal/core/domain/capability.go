package domain

import "sort"

// Capability is a permission derived from Role. Capabilities compose by
// explicit union over primitive role predicates; no role implies another.
type Capability string

const (
	CapAuthenticated       Capability = "authenticated"
	CapHouseholdManagement Capability = "household_management"
	CapFeeManagement       Capability = "fee_management"
	CapAdmin               Capability = "admin"
)

// Has reports whether the role grants c. RoleNone holds no capability.
func (r Role) Has(c Capability) bool {
	switch c {
	case CapAuthenticated:
		return r != RoleNone
	case CapHouseholdManagement:
		return r.CanAccessHouseholdManagement()
	case CapFeeManagement:
		return r.CanAccessFeeManagement()
	case CapAdmin:
		return r.IsAdmin()
	default:
		return false
	}
}

// Capabilities lists every capability the role grants, in a stable order.
func (r Role) Capabilities() []Capability {
	all := []Capability{CapAuthenticated, CapHouseholdManagement, CapFeeManagement, CapAdmin}
	out := make([]Capability, 0, len(all))
	for _, c := range all {
		if r.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Action is a UI operation that is rendered only when permitted.
type Action string

const (
	ActionEditHousehold     Action = "household.edit"
	ActionDeleteHousehold   Action = "household.delete"
	ActionActivateHousehold Action = "household.activate"
	ActionEditPerson        Action = "person.edit"
	ActionDeletePerson      Action = "person.delete"
	ActionEditResidence     Action = "temporary_residence.edit"
	ActionDeleteResidence   Action = "temporary_residence.delete"
	ActionEditFee           Action = "fee.edit"
	ActionDeleteFee         Action = "fee.delete"
	ActionToggleFeeStatus   Action = "fee.toggle_status"
	ActionEditPayment       Action = "payment.edit"
	ActionVerifyPayment     Action = "payment.verify"
	ActionDeletePayment     Action = "payment.delete"
	ActionEditVehicle       Action = "vehicle.edit"
	ActionDeleteVehicle     Action = "vehicle.delete"
	ActionEditUtilityBill   Action = "utility_bill.edit"
	ActionDeleteUtilityBill Action = "utility_bill.delete"
	ActionManageUsers       Action = "users.manage"
)

var actionCapabilities = map[Action]Capability{
	ActionEditHousehold:     CapHouseholdManagement,
	ActionDeleteHousehold:   CapHouseholdManagement,
	ActionActivateHousehold: CapHouseholdManagement,
	ActionEditPerson:        CapHouseholdManagement,
	ActionDeletePerson:      CapHouseholdManagement,
	ActionEditResidence:     CapHouseholdManagement,
	ActionDeleteResidence:   CapHouseholdManagement,
	ActionEditFee:           CapFeeManagement,
	ActionDeleteFee:         CapFeeManagement,
	ActionToggleFeeStatus:   CapFeeManagement,
	ActionEditPayment:       CapFeeManagement,
	ActionVerifyPayment:     CapFeeManagement,
	ActionDeletePayment:     CapFeeManagement,
	ActionEditVehicle:       CapFeeManagement,
	ActionDeleteVehicle:     CapFeeManagement,
	ActionEditUtilityBill:   CapFeeManagement,
	ActionDeleteUtilityBill: CapFeeManagement,
	ActionManageUsers:       CapAdmin,
}

// RequiredCapability returns the capability gating a. Unknown actions
// report ok=false and must be treated as denied.
func (a Action) RequiredCapability() (Capability, bool) {
	c, ok := actionCapabilities[a]
	return c, ok
}

// Allows reports whether the role may perform a.
func (r Role) Allows(a Action) bool {
	c, ok := a.RequiredCapability()
	return ok && r.Has(c)
}

// AllowedActions lists the actions a role may perform, sorted by name.
func (r Role) AllowedActions() []Action {
	out := make([]Action, 0, len(actionCapabilities))
	for a := range actionCapabilities {
		if r.Allows(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
