package policy_test

import (
	"testing"
	"tokenestate/internal/domain"
	"tokenestate/internal/policy"

	"github.com/stretchr/testify/assert"
)

func TestResolveWallet(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, domain.RoleManager)

	ident, err := policy.ResolveWallet(db, user.Wallet)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, ident.UserID)
	assert.Equal(t, domain.RoleManager, ident.Role)
}

func TestResolveWalletUnknown(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, domain.RoleUser)

	_, err := policy.ResolveWallet(db, "0x0000000000000000000000000000000000000bad")
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)
}

func TestResolveWalletEmpty(t *testing.T) {
	db := setupTestDB(t)

	_, err := policy.ResolveWallet(db, "")
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&policy.Identity{Role: domain.RoleAdmin}).IsAdmin())
	assert.False(t, (&policy.Identity{Role: domain.RoleManager}).IsAdmin())
	assert.False(t, (&policy.Identity{Role: domain.RoleUser}).IsAdmin())

	var nobody *policy.Identity
	assert.False(t, nobody.IsAdmin())
}
