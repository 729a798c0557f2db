package domain

import "github.com/shopspring/decimal"

// FeeSummary aggregates the payments recorded against one fee. Expected is
// only set for mandatory fees: amount times the number of active households.
type FeeSummary struct {
	FeeID         int64           `json:"feeId"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Active        bool            `json:"active"`
	Amount        decimal.Decimal `json:"amount"`
	Expected      decimal.Decimal `json:"expected"`
	Collected     decimal.Decimal `json:"collected"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Payments      int             `json:"payments"`
	Verified      int             `json:"verified"`
	PayingHouses  int             `json:"payingHouseholds"`
	CollectionPct decimal.Decimal `json:"collectionRate"`
}

// FeeBalance is one household's standing against one mandatory fee.
type FeeBalance struct {
	FeeID       int64           `json:"feeId"`
	Name        string          `json:"name"`
	Due         decimal.Decimal `json:"due"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type HouseholdBalance struct {
	HouseholdID int64           `json:"householdId"`
	Fees        []FeeBalance    `json:"fees"`
	TotalDue    decimal.Decimal `json:"totalDue"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Pending     int             `json:"pendingPayments"`
}

// HouseholdStats is shown to roles that manage households or fees.
// Persons is only set for household managers.
type HouseholdStats struct {
	Total   int  `json:"total"`
	Active  int  `json:"active"`
	Persons *int `json:"persons,omitempty"`
}

// FeeStats is shown to fee managers only.
type FeeStats struct {
	Fees             int             `json:"fees"`
	ActiveFees       int             `json:"activeFees"`
	MandatoryFees    int             `json:"mandatoryFees"`
	Payments         int             `json:"payments"`
	VerifiedPayments int             `json:"verifiedPayments"`
	PendingPayments  int             `json:"pendingPayments"`
	Collected        decimal.Decimal `json:"collected"`
	Pending          decimal.Decimal `json:"pendingAmount"`
}

// DashboardSummary is computed only after every underlying fetch succeeded.
// A section the role may not see is nil and omitted.
type DashboardSummary struct {
	Role       Role            `json:"role"`
	Households *HouseholdStats `json:"households,omitempty"`
	Fees       *FeeStats       `json:"fees,omitempty"`
}
