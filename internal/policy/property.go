package policy

import (
	"errors"
	"fmt"
	"time"
	"tokenestate/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyScope returns the visibility predicate for property reads as a
// composable gorm scope, so filtering happens in SQL rather than after the
// fetch. A nil identity is an unauthenticated caller and sees validated rows
// only.
func PropertyScope(id *Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == nil {
			return db.Where("status = ?", domain.StatusValidated)
		}
		switch id.Role {
		case domain.RoleAdmin:
			return db // All rows, any status
		case domain.RoleManager:
			return db.Where("created_by = ?", id.UserID)
		case domain.RoleUser:
			// Rows the caller holds at least one investment in
			invested := db.Session(&gorm.Session{NewDB: true}).
				Model(&domain.Investment{}).
				Select("property_id").
				Where("user_id = ?", id.UserID)
			return db.Where("id IN (?)", invested)
		}
		// Unknown role sees nothing
		return db.Where("1 = 0")
	}
}

// FindProperty fetches a single property through the caller's visibility
// scope. Rows outside the visible set and rows that do not exist are both
// ErrNotFound, so existence is never leaked.
func FindProperty(db *gorm.DB, id *Identity, propertyID uuid.UUID) (*domain.Property, error) {
	var p domain.Property
	err := db.Scopes(PropertyScope(id)).Where("id = ?", propertyID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CanCreateProperty permits manager and admin only
func CanCreateProperty(id *Identity) error {
	switch id.Role {
	case domain.RoleManager, domain.RoleAdmin:
		return nil
	case domain.RoleUser:
		return ErrForbidden
	}
	return ErrForbidden
}

// CanUpdateProperty guards full edits. Validated rows are frozen for
// everyone below admin; the status field itself is never mutable here.
func CanUpdateProperty(id *Identity, p *domain.Property) error {
	if id.IsAdmin() {
		return nil // Admin edits any row, validated included
	}
	switch id.Role {
	case domain.RoleManager:
		if p.Status == domain.StatusValidated {
			return ErrForbidden
		}
		return nil
	case domain.RoleUser:
		return ErrForbidden
	}
	return ErrForbidden
}

// CanDeleteProperty permits admin only, and refuses validated rows for
// everyone — a validated listing may carry investments and is never deletable
// directly.
func CanDeleteProperty(id *Identity, p *domain.Property) error {
	if !id.IsAdmin() {
		return ErrForbidden
	}
	if p.Status == domain.StatusValidated {
		return fmt.Errorf("validated property cannot be deleted: %w", ErrConflict)
	}
	return nil
}

// ChangeStatus validates and applies an admin status change in memory; the
// caller persists the mutated row. Any of the three statuses may be set from
// any other — the status field is deliberately flat, not a transition graph.
func ChangeStatus(id *Identity, p *domain.Property, raw string) error {
	if !id.IsAdmin() {
		return ErrForbidden
	}
	status, err := domain.ParsePropertyStatus(raw)
	if err != nil {
		return ErrInvalidInput
	}
	now := time.Now()
	by := id.UserID
	p.Status = status
	p.StatusChangedAt = &now
	p.StatusChangedBy = &by
	return nil
}
