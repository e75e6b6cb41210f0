package policy_test

import (
	"testing"
	"tokenestate/internal/domain"
	"tokenestate/internal/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func visibleInvestments(t *testing.T, db *gorm.DB, id *policy.Identity) map[uuid.UUID]bool {
	var invs []domain.Investment
	assert.NoError(t, db.Scopes(policy.InvestmentScope(id)).Find(&invs).Error)
	seen := make(map[uuid.UUID]bool, len(invs))
	for _, inv := range invs {
		seen[inv.ID] = true
	}
	return seen
}

func TestInvestmentVisibility(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, domain.RoleAdmin)
	m1 := seedUser(t, db, domain.RoleManager)
	m2 := seedUser(t, db, domain.RoleManager)
	u1 := seedUser(t, db, domain.RoleUser)
	u2 := seedUser(t, db, domain.RoleUser)

	pA := seedProperty(t, db, m1, domain.StatusValidated)
	pB := seedProperty(t, db, m2, domain.StatusValidated)
	i1 := seedInvestment(t, db, u1, pA)
	i2 := seedInvestment(t, db, u2, pB)
	i3 := seedInvestment(t, db, u2, pA)

	// Admin sees all stakes
	assert.Len(t, visibleInvestments(t, db, identityOf(admin)), 3)

	// A manager sees the stakes placed in their own properties
	assert.Equal(t, map[uuid.UUID]bool{i1.ID: true, i3.ID: true}, visibleInvestments(t, db, identityOf(m1)))
	assert.Equal(t, map[uuid.UUID]bool{i2.ID: true}, visibleInvestments(t, db, identityOf(m2)))

	// A user sees their own stakes only
	assert.Equal(t, map[uuid.UUID]bool{i1.ID: true}, visibleInvestments(t, db, identityOf(u1)))
	assert.Equal(t, map[uuid.UUID]bool{i2.ID: true, i3.ID: true}, visibleInvestments(t, db, identityOf(u2)))
}

func TestCreateInvestmentRequiresValidatedProperty(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, domain.RoleManager)
	investor := seedUser(t, db, domain.RoleUser)

	pending := seedProperty(t, db, manager, domain.StatusPending)
	rejected := seedProperty(t, db, manager, domain.StatusRejected)
	validated := seedProperty(t, db, manager, domain.StatusValidated)

	for _, prop := range []*domain.Property{pending, rejected} {
		inv := &domain.Investment{PropertyID: prop.ID, AmountETH: 1.5, Shares: 10, TxHash: "0xaaa" + string(prop.Status)}
		err := policy.CreateInvestment(db, identityOf(investor), inv)
		assert.ErrorIs(t, err, policy.ErrConflict)
	}

	inv := &domain.Investment{PropertyID: validated.ID, AmountETH: 1.5, Shares: 10, TxHash: "0xbbb"}
	assert.NoError(t, policy.CreateInvestment(db, identityOf(investor), inv))
	assert.Equal(t, investor.ID, inv.UserID)
}

func TestCreateInvestmentForcesInvestor(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, domain.RoleManager)
	investor := seedUser(t, db, domain.RoleUser)
	other := seedUser(t, db, domain.RoleUser)
	validated := seedProperty(t, db, manager, domain.StatusValidated)

	// A client-supplied investor id is overwritten with the caller's
	inv := &domain.Investment{UserID: other.ID, PropertyID: validated.ID, AmountETH: 2, Shares: 4, TxHash: "0xccc"}
	assert.NoError(t, policy.CreateInvestment(db, identityOf(investor), inv))
	assert.Equal(t, investor.ID, inv.UserID)

	var stored domain.Investment
	assert.NoError(t, db.Where("id = ?", inv.ID).First(&stored).Error)
	assert.Equal(t, investor.ID, stored.UserID)
}

func TestCreateInvestmentMissingProperty(t *testing.T) {
	db := setupTestDB(t)
	investor := seedUser(t, db, domain.RoleUser)

	inv := &domain.Investment{PropertyID: uuid.New(), AmountETH: 1, Shares: 1, TxHash: "0xddd"}
	err := policy.CreateInvestment(db, identityOf(investor), inv)
	assert.ErrorIs(t, err, policy.ErrNotFound)
}

func TestCreateInvestmentDuplicateTxHash(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, domain.RoleManager)
	investor := seedUser(t, db, domain.RoleUser)
	validated := seedProperty(t, db, manager, domain.StatusValidated)

	first := &domain.Investment{PropertyID: validated.ID, AmountETH: 1, Shares: 1, TxHash: "0xsame"}
	assert.NoError(t, policy.CreateInvestment(db, identityOf(investor), first))

	dup := &domain.Investment{PropertyID: validated.ID, AmountETH: 2, Shares: 2, TxHash: "0xsame"}
	err := policy.CreateInvestment(db, identityOf(investor), dup)
	assert.ErrorIs(t, err, policy.ErrConflict)
}

func TestCanModifyInvestment(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, domain.RoleAdmin)
	manager := seedUser(t, db, domain.RoleManager)
	owner := seedUser(t, db, domain.RoleUser)
	stranger := seedUser(t, db, domain.RoleUser)

	prop := seedProperty(t, db, manager, domain.StatusValidated)
	inv := seedInvestment(t, db, owner, prop)

	assert.NoError(t, policy.CanModifyInvestment(identityOf(owner), inv))
	assert.NoError(t, policy.CanModifyInvestment(identityOf(admin), inv))
	// The property's manager can see the stake but may not touch it
	assert.ErrorIs(t, policy.CanModifyInvestment(identityOf(manager), inv), policy.ErrForbidden)
	assert.ErrorIs(t, policy.CanModifyInvestment(identityOf(stranger), inv), policy.ErrForbidden)
}
