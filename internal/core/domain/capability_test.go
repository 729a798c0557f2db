package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleHas(t *testing.T) {
	assert.False(t, RoleNone.Has(CapAuthenticated))
	assert.True(t, RoleUser.Has(CapAuthenticated))
	assert.False(t, RoleUser.Has(CapHouseholdManagement))
	assert.True(t, RoleToTruong.Has(CapHouseholdManagement))
	assert.False(t, RoleToTruong.Has(CapAdmin))
	assert.False(t, RoleAdmin.Has(Capability("unknown")))
}

func TestCapabilities(t *testing.T) {
	assert.Empty(t, RoleNone.Capabilities())
	assert.Equal(t, []Capability{CapAuthenticated, CapFeeManagement}, RoleKeToan.Capabilities())
	assert.Equal(t, []Capability{CapAuthenticated, CapHouseholdManagement, CapFeeManagement, CapAdmin}, RoleAdmin.Capabilities())
}

func TestActionsGating(t *testing.T) {
	assert.True(t, RoleToTruong.Allows(ActionActivateHousehold))
	assert.False(t, RoleToTruong.Allows(ActionVerifyPayment))
	assert.True(t, RoleKeToan.Allows(ActionToggleFeeStatus))
	assert.False(t, RoleKeToan.Allows(ActionDeletePerson))
	assert.False(t, RoleUser.Allows(ActionEditHousehold))
	assert.False(t, RoleAdmin.Allows(Action("household.explode")))

	assert.Len(t, RoleAdmin.AllowedActions(), len(actionCapabilities))
	assert.Empty(t, RoleUser.AllowedActions())
	assert.Equal(t, []Action{ActionManageUsers}, filterActions(RoleAdmin.AllowedActions(), CapAdmin))
}

func filterActions(actions []Action, c Capability) []Action {
	var out []Action
	for _, a := range actions {
		if req, _ := a.RequiredCapability(); req == c {
			out = append(out, a)
		}
	}
	return out
}
