package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := initDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDatabaseWallets(t *testing.T) {
	db := newTestDB(t)

	const wallet = "0x1234567890123456789012345678901234567890"
	const other = "0xAbCdEf1234567890AbCdEf1234567890AbCdEf12"

	wallets, err := db.GetWallets(1)
	require.NoError(t, err)
	assert.Empty(t, wallets)

	require.NoError(t, db.AddWallet(1, wallet))
	require.NoError(t, db.AddWallet(1, wallet))
	require.NoError(t, db.AddWallet(1, other))
	require.NoError(t, db.AddWallet(2, other))

	wallets, err = db.GetWallets(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{wallet, other}, wallets)

	removed, err := db.RemoveWallet(1, wallet)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = db.RemoveWallet(1, wallet)
	require.NoError(t, err)
	assert.False(t, removed)

	wallets, err = db.GetWallets(1)
	require.NoError(t, err)
	assert.Equal(t, []string{other}, wallets)

	wallets, err = db.GetWallets(2)
	require.NoError(t, err)
	assert.Equal(t, []string{other}, wallets)
}
