package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Investment Model
type Investment struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`                     // Primary key
	UserID     uuid.UUID `gorm:"type:char(36);index;not null" json:"user_id"`            // Investor, always the authenticated caller
	PropertyID uuid.UUID `gorm:"type:char(36);index;not null" json:"property_id"`        // Target property, must be validated at creation
	AmountETH  float64   `gorm:"type:decimal(20,8);not null" json:"amount_eth"`          // Invested amount in ETH
	Shares     int       `gorm:"not null" json:"shares"`                                 // Integer share count
	TxHash     string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"tx_hash"`  // On-chain transaction hash
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none was set
func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
