package policy

import (
	"fmt"
	"tokenestate/internal/domain"
)

// CanListUsers permits admin only
func CanListUsers(id *Identity) error {
	if !id.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// ChangeRole validates and applies an admin role change in memory; the caller
// persists the mutated row. An admin may not change their own role, so there
// is always at least one admin left standing.
func ChangeRole(id *Identity, target *domain.User, raw string) error {
	if !id.IsAdmin() {
		return ErrForbidden
	}
	if target.ID == id.UserID {
		return fmt.Errorf("cannot change own role: %w", ErrConflict)
	}
	role, err := domain.ParseRole(raw)
	if err != nil {
		return ErrInvalidInput
	}
	target.Role = role
	return nil
}
