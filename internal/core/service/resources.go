package service

import (
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/mapping"
)

// Resource binds a gateway collection name to its mapping table, backend
// collection and the actions gating writes. Create and Update both need
// Edit.
type Resource struct {
	Name       string
	Table      *mapping.Table
	Collection string
	Edit       domain.Action
	Delete     domain.Action
}

var resources = []Resource{
	{"households", mapping.Household, pathHouseholds, domain.ActionEditHousehold, domain.ActionDeleteHousehold},
	{"persons", mapping.Person, pathPersons, domain.ActionEditPerson, domain.ActionDeletePerson},
	{"temporary-residence", mapping.TemporaryResidence, pathTemporaryResidence, domain.ActionEditResidence, domain.ActionDeleteResidence},
	{"fees", mapping.Fee, pathFees, domain.ActionEditFee, domain.ActionDeleteFee},
	{"payments", mapping.Payment, pathPayments, domain.ActionEditPayment, domain.ActionDeletePayment},
	{"vehicles", mapping.Vehicle, pathVehicles, domain.ActionEditVehicle, domain.ActionDeleteVehicle},
	{"utility-services", mapping.UtilityBill, pathUtilityServices, domain.ActionEditUtilityBill, domain.ActionDeleteUtilityBill},
}

// Resources lists every CRUD resource.
func Resources() []Resource {
	out := make([]Resource, len(resources))
	copy(out, resources)
	return out
}

// ResourceByName finds a resource by its gateway collection name.
func ResourceByName(name string) (Resource, bool) {
	for _, r := range resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}
