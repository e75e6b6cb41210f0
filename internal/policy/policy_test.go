package policy_test

import (
	"fmt"
	"testing"
	"tokenestate/internal/domain"
	"tokenestate/internal/policy"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var walletSeq int

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Property{}, &domain.Investment{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role domain.Role) *domain.User {
	walletSeq++
	user := &domain.User{
		Wallet: fmt.Sprintf("0x%040x", walletSeq),
		Role:   role,
	}
	assert.NoError(t, db.Create(user).Error)
	return user
}

func identityOf(u *domain.User) *policy.Identity {
	return &policy.Identity{UserID: u.ID, Role: u.Role}
}

func seedProperty(t *testing.T, db *gorm.DB, creator *domain.User, status domain.PropertyStatus) *domain.Property {
	walletSeq++
	prop := &domain.Property{
		OnchainID: fmt.Sprintf("chain-%d", walletSeq),
		Name:      "Test Property",
		Location:  "Lisbon",
		Category:  "residential",
		CreatedBy: creator.ID,
		Status:    status,
	}
	assert.NoError(t, db.Create(prop).Error)
	return prop
}

func seedInvestment(t *testing.T, db *gorm.DB, investor *domain.User, prop *domain.Property) *domain.Investment {
	walletSeq++
	inv := &domain.Investment{
		UserID:     investor.ID,
		PropertyID: prop.ID,
		AmountETH:  1.5,
		Shares:     10,
		TxHash:     fmt.Sprintf("0xtx%040x", walletSeq),
	}
	assert.NoError(t, db.Create(inv).Error)
	return inv
}
