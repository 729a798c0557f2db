package domain

// View is a top-level screen of the admin front end.
type View string

const (
	ViewLogin              View = "login"
	ViewHome               View = "home"
	ViewDashboard          View = "dashboard"
	ViewHouseholds         View = "households"
	ViewHouseholdDetail    View = "household-detail"
	ViewPersons            View = "persons"
	ViewTemporaryResidence View = "temporary-residence"
	ViewFees               View = "fees"
	ViewPayments           View = "payments"
	ViewStatistics         View = "statistics"
	ViewVehicles           View = "vehicles"
	ViewUtilityServices    View = "utility-services"
	ViewUsers              View = "users"
)
