package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User Model
type User struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`                  // Primary key
	Wallet    string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"wallet"` // Wallet address, the bearer credential
	Name      string    `gorm:"type:varchar(128)" json:"name,omitempty"`             // Optional display name
	Role      Role      `gorm:"type:varchar(16);not null;default:user" json:"role"`  // user, manager or admin
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none was set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
