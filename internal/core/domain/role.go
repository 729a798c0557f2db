package domain

import "strings"

// Role is the closed set of roles a credential can carry.
type Role int

const (
	RoleNone Role = iota
	RoleAdmin
	RoleToTruong
	RoleKeToan
	RoleUser
)

// legacyPrefix is the Spring-style authority prefix some tokens and cached
// user records still carry ("ROLE_ADMIN").
const legacyPrefix = "ROLE_"

var roleNames = map[Role]string{
	RoleAdmin:    "ADMIN",
	RoleToTruong: "TO_TRUONG",
	RoleKeToan:   "KE_TOAN",
	RoleUser:     "USER",
}

// rolePrecedence orders roles when a credential lists several of them.
var rolePrecedence = []Role{RoleAdmin, RoleToTruong, RoleKeToan, RoleUser}

// ParseRole normalizes both historical spellings ("ROLE_ADMIN" and "ADMIN")
// into a Role. Unknown or empty strings yield RoleNone.
func ParseRole(s string) Role {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, legacyPrefix)
	for r, name := range roleNames {
		if name == s {
			return r
		}
	}
	return RoleNone
}

// HighestRole picks the role with the highest precedence among raw role
// strings. Unrecognized entries are ignored.
func HighestRole(raw []string) Role {
	seen := make(map[Role]bool, len(raw))
	for _, s := range raw {
		seen[ParseRole(s)] = true
	}
	for _, r := range rolePrecedence {
		if seen[r] {
			return r
		}
	}
	return RoleNone
}

// String returns the bare spelling, or "" for RoleNone.
func (r Role) String() string {
	return roleNames[r]
}

// Authority returns the legacy prefixed spelling expected by older backends.
func (r Role) Authority() string {
	if r == RoleNone {
		return ""
	}
	return legacyPrefix + r.String()
}

func (r Role) IsAdmin() bool    { return r == RoleAdmin }
func (r Role) IsToTruong() bool { return r == RoleToTruong }
func (r Role) IsKeToan() bool   { return r == RoleKeToan }

// CanAccessHouseholdManagement covers households, residents and temporary
// residence records.
func (r Role) CanAccessHouseholdManagement() bool {
	return r.IsAdmin() || r.IsToTruong()
}

// CanAccessFeeManagement covers fees, payments, vehicle and utility billing
// and statistics.
func (r Role) CanAccessFeeManagement() bool {
	return r.IsAdmin() || r.IsKeToan()
}

// MarshalText lets Role travel as its bare spelling in JSON.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts either spelling. Unknown roles decode to RoleNone.
func (r *Role) UnmarshalText(b []byte) error {
	*r = ParseRole(string(b))
	return nil
}
