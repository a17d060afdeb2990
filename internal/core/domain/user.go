package domain

import "strings"

// Role is the authorization role carried in the access token's role claim.
// Wire form follows the ROLE_<NAME> convention used by the REST API.
type Role string

const (
	RoleAdmin       Role = "ROLE_ADMIN"
	RoleDeveloper   Role = "ROLE_DEVELOPER"
	RoleTester      Role = "ROLE_TESTER"
	RoleStakeholder Role = "ROLE_STAKEHOLDER"
	// RoleUser is the low-privilege fallback assigned when registration
	// carries no recognised role.
	RoleUser Role = "ROLE_USER"
)

// ParseRole normalises a user-supplied role selection ("admin", "ADMIN",
// "ROLE_ADMIN") to its canonical wire form. Unrecognised input yields RoleUser.
func ParseRole(s string) Role {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "ROLE_")
	r := Role("ROLE_" + name)
	if r.Known() || r == RoleUser {
		return r
	}
	return RoleUser
}

// Known reports whether r is one of the four dashboard roles.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleTester, RoleStakeholder:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID           int64  `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
