package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAccountStorage(t *testing.T) *SQLiteAccountStorage {
	sqlite := setupTestSQLite(t)
	return NewSQLiteAccountStorage(sqlite, zap.NewNop().Sugar())
}

func TestInsertAccount_AssignsPositiveID(t *testing.T) {
	storage := setupAccountStorage(t)
	ctx := context.Background()

	id, err := storage.InsertAccount(ctx, "bob", "pass")
	require.NoError(t, err)
	assert.Greater(t, id, int64(0), "Assigned ID should be positive")

	id2, err := storage.InsertAccount(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.Greater(t, id2, id, "IDs should be monotonically assigned")
}

func TestInsertAccount_DuplicateUsername(t *testing.T) {
	storage := setupAccountStorage(t)
	ctx := context.Background()

	_, err := storage.InsertAccount(ctx, "bob", "pass")
	require.NoError(t, err)

	_, err = storage.InsertAccount(ctx, "bob", "different")
	assert.ErrorIs(t, err, ErrDuplicateUsername, "Second insert with same username should hit the UNIQUE constraint")
}

func TestGetAccountByID(t *testing.T) {
	storage := setupAccountStorage(t)
	ctx := context.Background()

	id, err := storage.InsertAccount(ctx, "bob", "pass")
	require.NoError(t, err)

	account, err := storage.GetAccountByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, account.ID)
	assert.Equal(t, "bob", account.Username)
	assert.Equal(t, "pass", account.Password)
}

func TestGetAccountByID_NotFound(t *testing.T) {
	storage := setupAccountStorage(t)

	account, err := storage.GetAccountByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Nil(t, account)
}

func TestGetAccountByUsername(t *testing.T) {
	storage := setupAccountStorage(t)
	ctx := context.Background()

	id, err := storage.InsertAccount(ctx, "bob", "pass")
	require.NoError(t, err)

	account, err := storage.GetAccountByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, id, account.ID)
	assert.Equal(t, "bob", account.Username)
}

func TestGetAccountByUsername_NotFound(t *testing.T) {
	storage := setupAccountStorage(t)

	account, err := storage.GetAccountByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Nil(t, account)
}

func TestListAccounts(t *testing.T) {
	storage := setupAccountStorage(t)
	ctx := context.Background()

	accounts, err := storage.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts, "Fresh database should have no accounts")

	_, err = storage.InsertAccount(ctx, "bob", "pass")
	require.NoError(t, err)
	_, err = storage.InsertAccount(ctx, "alice", "hunter2")
	require.NoError(t, err)

	accounts, err = storage.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "bob", accounts[0].Username, "Accounts should come back in creation order")
	assert.Equal(t, "alice", accounts[1].Username)
}
