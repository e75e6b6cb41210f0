package policy

import (
	"errors"
	"tokenestate/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity is a resolved caller: who they are and what role they carry. A nil
// *Identity stands for an unauthenticated caller throughout this package.
type Identity struct {
	UserID uuid.UUID   // Resolved user ID
	Role   domain.Role // Role at resolution time, read fresh from the DB per request
}

// IsAdmin is the single admin-bypass check consulted by every resource policy
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == domain.RoleAdmin
}

// ResolveWallet maps a bearer wallet credential to an identity. Unknown or
// empty credentials resolve to ErrUnauthenticated; the lookup is read-only.
func ResolveWallet(db *gorm.DB, wallet string) (*Identity, error) {
	if wallet == "" {
		return nil, ErrUnauthenticated
	}
	var user domain.User
	if err := db.Where("wallet = ?", wallet).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return &Identity{UserID: user.ID, Role: user.Role}, nil
}
