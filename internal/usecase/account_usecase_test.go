package usecase

import (
	"context"
	"testing"

	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountFixture() (*AccountUseCase, *memStore) {
	store := newMemStore()
	return NewAccountUC(&fakeAccountRepo{store: store}, testLogger{}), store
}

func TestGetAccount(t *testing.T) {
	uc, store := newAccountFixture()
	account := store.addAccount("alice", 123456)

	got, err := uc.GetAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, int64(123456), got.Funds)

	_, err = uc.GetAccount(context.Background(), 999)
	assert.ErrorIs(t, err, e.ErrAccountNotFound)
}

func TestUpdateProfile_ChangesOnlyProfileFields(t *testing.T) {
	uc, store := newAccountFixture()
	account := store.addAccount("alice", 123456)

	updated, err := uc.UpdateProfile(context.Background(), &UpdateProfileReq{
		ID:       account.ID,
		Username: "alice2",
		Email:    "alice2@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "alice2@example.com", updated.Email)
	// Баланс профилем не управляется
	assert.Equal(t, int64(123456), updated.Funds)
}

func TestDeleteAccount(t *testing.T) {
	uc, store := newAccountFixture()
	account := store.addAccount("alice", 0)

	require.NoError(t, uc.DeleteAccount(context.Background(), account.ID))

	_, err := uc.GetAccount(context.Background(), account.ID)
	assert.ErrorIs(t, err, e.ErrAccountNotFound)
}

func TestListAccounts(t *testing.T) {
	uc, store := newAccountFixture()
	store.addAccount("alice", 100)
	store.addAccount("bob", 200)

	accounts, err := uc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "alice", accounts[0].Username)
	assert.Equal(t, "bob", accounts[1].Username)
}
