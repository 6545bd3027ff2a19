package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTxTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`CREATE TABLE entries (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`).Error)
	return conn
}

func countEntries(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, conn.Table("entries").Count(&count).Error)
	return count
}

func TestTransactionCommits(t *testing.T) {
	conn := setupTxTestDB(t)
	ctx := context.Background()

	err := Transaction(ctx, conn, func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO entries (name) VALUES ('a')`).Error; err != nil {
			return err
		}
		return tx.Exec(`INSERT INTO entries (name) VALUES ('b')`).Error
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, countEntries(t, conn))
}

func TestTransactionRollsBackOnError(t *testing.T) {
	conn := setupTxTestDB(t)
	ctx := context.Background()

	boom := errors.New("second write failed")
	err := Transaction(ctx, conn, func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO entries (name) VALUES ('a')`).Error; err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, countEntries(t, conn))
}

func TestTransactionRollsBackOnPanic(t *testing.T) {
	conn := setupTxTestDB(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = Transaction(ctx, conn, func(tx *gorm.DB) error {
			if err := tx.Exec(`INSERT INTO entries (name) VALUES ('a')`).Error; err != nil {
				return err
			}
			panic("mid-transaction panic")
		})
	})
	assert.Zero(t, countEntries(t, conn))
}
