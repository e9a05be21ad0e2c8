package domain

import "time"

// Role tags an account with a permission tier.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// DefaultRoles is assigned to every newly registered account.
func DefaultRoles() []Role {
	return []Role{RoleUser}
}

// User is the domain model for a registered account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user carries the given role tag.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
