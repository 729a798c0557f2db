package domain

// User is the user record cached next to the bearer token after login.
// RawRole keeps the spelling the backend sent; Role() normalizes it.
type User struct {
	ID       int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Username string `json:"username" yaml:"username"`
	FullName string `json:"fullName,omitempty" yaml:"full-name,omitempty"`
	RawRole  string `json:"role" yaml:"role"`
}

// Role returns the normalized role of the cached record.
func (u *User) Role() Role {
	if u == nil {
		return RoleNone
	}
	return ParseRole(u.RawRole)
}

// Credential is an opaque bearer token plus the optional cached user record.
type Credential struct {
	Token string `json:"token" yaml:"token"`
	User  *User  `json:"user,omitempty" yaml:"user,omitempty"`
}
