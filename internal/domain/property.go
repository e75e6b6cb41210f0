package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyStatus is the validation state of a listing. The three values are
// mutually reachable by admin action; there is no transition graph.
type PropertyStatus string

const (
	StatusPending   PropertyStatus = "pending"   // Initial state on create
	StatusValidated PropertyStatus = "validated" // Admin-approved, open for investment
	StatusRejected  PropertyStatus = "rejected"  // Admin-rejected
)

// ParsePropertyStatus converts a raw string into a PropertyStatus
func ParsePropertyStatus(s string) (PropertyStatus, error) {
	switch PropertyStatus(s) {
	case StatusPending, StatusValidated, StatusRejected:
		return PropertyStatus(s), nil
	}
	return "", fmt.Errorf("unknown property status %q", s)
}

// Property Model
type Property struct {
	ID              uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`                      // Primary key
	OnchainID       string         `gorm:"type:varchar(128);uniqueIndex;not null" json:"onchain_id"` // On-chain reference, immutable after create
	Name            string         `gorm:"type:varchar(191);not null" json:"name"`
	Location        string         `gorm:"type:varchar(191);not null" json:"location"`
	Category        string         `gorm:"type:varchar(64);not null" json:"category"`
	Description     string         `gorm:"type:text" json:"description,omitempty"`
	TotalPrice      float64        `gorm:"type:decimal(20,4)" json:"total_price"`
	TokenPrice      float64        `gorm:"type:decimal(20,4)" json:"token_price"`
	AnnualYield     float64        `gorm:"type:decimal(8,4)" json:"annual_yield"`
	ImageURL        string         `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	Documents       []string       `gorm:"serializer:json" json:"documents,omitempty"`              // Document references
	CreatedBy       uuid.UUID      `gorm:"type:char(36);index;not null" json:"created_by"`          // Owning user, always the caller
	CreatedAt       time.Time      `json:"created_at"`
	Status          PropertyStatus `gorm:"type:varchar(16);not null;default:pending" json:"status"` // pending, validated or rejected
	StatusChangedAt *time.Time     `json:"status_changed_at,omitempty"`                             // Set on admin status change
	StatusChangedBy *uuid.UUID     `gorm:"type:char(36)" json:"status_changed_by,omitempty"`        // Admin who changed it
}

// BeforeCreate assigns a UUID primary key when none was set
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
