package domain

// Actor is the caller of a use case: the bearer token forwarded to the
// backend plus who it belongs to, for gating and auditing.
type Actor struct {
	SessionID string
	Token     string
	Username  string
	Role      Role
}
