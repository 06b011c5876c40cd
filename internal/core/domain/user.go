package domain

import "time"

const (
	RoleTenant = "tenant"
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleTenant, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// User models an account on the platform.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsBlocked    bool      `json:"is_blocked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanListProperties reports whether the user's role permits owning listings.
func (u *User) CanListProperties() bool {
	return u.Role == RoleOwner || u.Role == RoleAdmin
}

// OwnerSummary is the denormalized owner view attached to search results.
// It carries no credential material.
type OwnerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
