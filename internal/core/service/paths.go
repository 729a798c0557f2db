package service

import "strconv"

// Backend collections and endpoints.
const (
	pathHouseholds         = "/households"
	pathPersons            = "/persons"
	pathFees               = "/fees"
	pathPayments           = "/payments"
	pathVehicles           = "/vehicles"
	pathUtilityServices    = "/utility-services"
	pathTemporaryResidence = "/temporary-residence"

	pathLogin = "/auth/login"
)

func itemPath(collection string, id int64) string {
	return collection + "/" + strconv.FormatInt(id, 10)
}
