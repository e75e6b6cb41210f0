package policy

import (
	"errors"
	"fmt"
	"tokenestate/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvestmentScope returns the visibility predicate for investment reads.
// Managers see investments placed in properties they created; plain users see
// their own stakes only.
func InvestmentScope(id *Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch id.Role {
		case domain.RoleAdmin:
			return db
		case domain.RoleManager:
			managed := db.Session(&gorm.Session{NewDB: true}).
				Model(&domain.Property{}).
				Select("id").
				Where("created_by = ?", id.UserID)
			return db.Where("property_id IN (?)", managed)
		case domain.RoleUser:
			return db.Where("user_id = ?", id.UserID)
		}
		return db.Where("1 = 0")
	}
}

// FindInvestment fetches a single investment through the caller's visibility
// scope. Invisible and nonexistent rows are both ErrNotFound.
func FindInvestment(db *gorm.DB, id *Identity, investmentID uuid.UUID) (*domain.Investment, error) {
	var inv domain.Investment
	err := db.Scopes(InvestmentScope(id)).Where("id = ?", investmentID).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// CanModifyInvestment permits the owning investor and admin; anyone else who
// can see the row (a manager, via their property) still may not touch it.
func CanModifyInvestment(id *Identity, inv *domain.Investment) error {
	if id.IsAdmin() || inv.UserID == id.UserID {
		return nil
	}
	return ErrForbidden
}

// CreateInvestment inserts a stake for the caller. The investor field is
// always the authenticated identity, never client input, and the
// validated-status check runs in the same transaction as the insert so a
// concurrent status change cannot slip between them.
func CreateInvestment(db *gorm.DB, id *Identity, inv *domain.Investment) error {
	inv.UserID = id.UserID
	return db.Transaction(func(tx *gorm.DB) error {
		var prop domain.Property
		if err := tx.Where("id = ?", inv.PropertyID).First(&prop).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if prop.Status != domain.StatusValidated {
			return fmt.Errorf("property not validated: %w", ErrConflict)
		}
		if err := tx.Create(inv).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("transaction hash already recorded: %w", ErrConflict)
			}
			return err
		}
		return nil
	})
}
