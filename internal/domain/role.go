package domain

import "fmt"

// Role is the closed set of caller roles. Keeping it a distinct type forces
// every authorization decision point to switch over RoleUser / RoleManager /
// RoleAdmin explicitly instead of comparing free strings.
type Role string

const (
	RoleUser    Role = "user"    // Default role for self-registered callers
	RoleManager Role = "manager" // May create and manage own property listings
	RoleAdmin   Role = "admin"   // Full access, validates listings
)

// ParseRole converts a raw string into a Role, rejecting anything outside the
// three known values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleManager, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}
